package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Addr       string
	Store      string
	SQLitePath string
	DBURL      string

	JWTSecret         string
	// GeneratedSecret is set when JWT_SECRET was empty and a random
	// per-process secret was drawn instead. Tokens die with the process.
	GeneratedSecret   bool
	AdminPasswordHash string
	OTPCode           string
	OAuthDelay        time.Duration

	GeminiAPIKey    string
	GeminiModel     string
	GeminiChatModel string
	AITimeout       time.Duration

	KafkaBrokers []string
	OrderTopic   string

	LogLevel string
	UPIPayee string

	SessionIdle  time.Duration
	SessionSweep time.Duration
}

// Load reads a .env file when present and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	addr := os.Getenv("FYX_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	store := strings.ToLower(os.Getenv("FYX_STORE"))
	if store == "" {
		store = StoreMemory
	}
	sqlitePath := os.Getenv("FYX_SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "data/fyx.db"
	}
	secret, generated := os.Getenv("JWT_SECRET"), false
	if secret == "" {
		secret, generated = randomSecret(), true
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	chatModel := os.Getenv("GEMINI_CHAT_MODEL")
	if chatModel == "" {
		chatModel = "gemini-2.5-flash-lite-preview-02-05"
	}
	topic := os.Getenv("FYX_ORDER_TOPIC")
	if topic == "" {
		topic = "fyx.orders"
	}
	payee := os.Getenv("FYX_UPI_PAYEE")
	if payee == "" {
		payee = "fyx@upi"
	}

	return Config{
		Addr:              addr,
		Store:             store,
		SQLitePath:        sqlitePath,
		DBURL:             os.Getenv("DATABASE_URL"),
		JWTSecret:         secret,
		GeneratedSecret:   generated,
		AdminPasswordHash: os.Getenv("FYX_ADMIN_PASSWORD_HASH"),
		OTPCode:           os.Getenv("FYX_OTP_CODE"),
		OAuthDelay:        duration("FYX_OAUTH_DELAY", 1500*time.Millisecond),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       model,
		GeminiChatModel:   chatModel,
		AITimeout:         duration("FYX_AI_TIMEOUT", 20*time.Second),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		OrderTopic:        topic,
		LogLevel:          os.Getenv("FYX_LOG_LEVEL"),
		UPIPayee:          payee,
		SessionIdle:       duration("FYX_SESSION_IDLE", 30*time.Minute),
		SessionSweep:      duration("FYX_SESSION_SWEEP", time.Minute),
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("config: no randomness for JWT secret: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// duration parses values like "1.5s"; unparsable values fall back to def.
func duration(name string, def time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
