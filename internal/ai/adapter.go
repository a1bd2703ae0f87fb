package ai

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/wichananm65/fyx-store/internal/logging"
	"github.com/wichananm65/fyx-store/internal/metrics"
)

var ErrBusy = errors.New("ai request already in progress")

// Fallback text returned when the model cannot be reached. Empty answers
// get the softer "no result" variants.
const (
	FallbackDescription = "Error generating description. Please write manually."
	FallbackMarketing   = "AI Service unavailable."
	FallbackInsight     = "Keep growing your sales!"
	FallbackChat        = "Our assistant is currently resting. Please try again later."

	EmptyDescription = "No description generated."
	EmptyMarketing   = "Could not generate email."
	EmptyInsight     = "Analysis unavailable."
	EmptyChat        = "I'm sorry, I didn't understand that."
)

const (
	opDescription = "description"
	opMarketing   = "marketing"
	opInsight     = "insight"
	opChat        = "chat"
)

// Guard is a set of busy flags, one per key.
type Guard struct {
	mu   sync.Mutex
	busy map[string]bool
}

func NewGuard() *Guard {
	return &Guard{busy: map[string]bool{}}
}

// Acquire sets the flag for key. It fails while the flag is already set;
// callers must call the returned release func exactly once.
func (g *Guard) Acquire(key string) (func(), bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[key] {
		return nil, false
	}
	g.busy[key] = true
	return func() {
		g.mu.Lock()
		delete(g.busy, key)
		g.mu.Unlock()
	}, true
}

// Adapter wraps a Generator with the storefront prompts. Model failures are
// never returned to callers: each operation degrades to fixed text.
type Adapter struct {
	gen       Generator
	model     string
	chatModel string
	guard     *Guard
}

func NewAdapter(gen Generator, model, chatModel string) *Adapter {
	return &Adapter{gen: gen, model: model, chatModel: chatModel, guard: NewGuard()}
}

func rupees(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', -1, 64)
}

func (a *Adapter) run(ctx context.Context, op, key, model, system, prompt, empty, fallback string) (string, error) {
	release, ok := a.guard.Acquire(key)
	if !ok {
		return "", ErrBusy
	}
	defer release()

	text, err := a.gen.Generate(ctx, model, system, prompt)
	switch {
	case errors.Is(err, ErrEmptyResponse):
		return empty, nil
	case err != nil:
		metrics.AIFallbacks.WithLabelValues(op).Inc()
		logging.FromContext(ctx).Warn("ai fallback", "operation", op, "error", err)
		return fallback, nil
	}
	return text, nil
}

func (a *Adapter) GenerateDescription(ctx context.Context, name, category string, price float64) (string, error) {
	prompt := fmt.Sprintf("You are a premium e-commerce copywriter. Write a sophisticated, 2-sentence product description for a %q (Category: %s, Price: %s). Emphasize quality and lifestyle.",
		name, category, rupees(price))
	return a.run(ctx, opDescription, opDescription, a.model, "", prompt, EmptyDescription, FallbackDescription)
}

// GenerateMarketingCopy drafts a newsletter email. promoCode is optional.
func (a *Adapter) GenerateMarketingCopy(ctx context.Context, topic, promoCode string) (string, error) {
	prompt := fmt.Sprintf("Write a short, punchy marketing email for an e-commerce store named 'FYX'.\nTopic: %s.\n", topic)
	if promoCode != "" {
		prompt += fmt.Sprintf("Include this discount code: %s.\n", promoCode)
	}
	prompt += "Tone: Exclusive, Hype, Premium.\nStructure: Subject Line, then Body."
	return a.run(ctx, opMarketing, opMarketing, a.model, "", prompt, EmptyMarketing, FallbackMarketing)
}

func (a *Adapter) SummarizeSalesTrend(ctx context.Context, orderCount int, revenue float64) (string, error) {
	prompt := fmt.Sprintf("As an e-commerce business analyst, provide a short 2-sentence summary of store performance given %d orders and %s revenue today. Use a professional tone.",
		orderCount, rupees(revenue))
	return a.run(ctx, opInsight, opInsight, a.model, "", prompt, EmptyInsight, FallbackInsight)
}

// Chat answers a shopper. Each session may have one question in flight.
func (a *Adapter) Chat(ctx context.Context, sessionID, message, storeContext string) (string, error) {
	system := fmt.Sprintf("You are a helpful assistant for FYX, a premium e-commerce store.\nContext: %s.\nKeep answers under 30 words. Be polite and snappy.", storeContext)
	return a.run(ctx, opChat, opChat+":"+sessionID, a.chatModel, system, message, EmptyChat, FallbackChat)
}
