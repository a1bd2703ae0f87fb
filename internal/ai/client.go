package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var (
	ErrNoAPIKey      = errors.New("gemini api key is not configured")
	ErrEmptyResponse = errors.New("gemini returned no text")
)

// Generator turns a prompt into text. system may be empty.
type Generator interface {
	Generate(ctx context.Context, model, system, prompt string) (string, error)
}

// GeminiClient calls the generateContent REST endpoint with fiber's client.
type GeminiClient struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewGeminiClient(apiKey string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{BaseURL: DefaultBaseURL, APIKey: apiKey, Timeout: timeout}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GeminiClient) Generate(ctx context.Context, model, system, prompt string) (string, error) {
	if g.APIKey == "" {
		return "", ErrNoAPIKey
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body := generateRequest{Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}}}
	if system != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	timeout := g.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); timeout <= 0 || left < timeout {
			timeout = left
		}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(g.BaseURL, "/"), model)
	agent := fiber.Post(url)
	agent.Set("x-goog-api-key", g.APIKey)
	agent.JSON(body)
	if timeout > 0 {
		agent.Timeout(timeout)
	}
	if err := agent.Parse(); err != nil {
		return "", err
	}

	var out generateResponse
	code, _, errs := agent.Struct(&out)
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	if code != fiber.StatusOK {
		if out.Error != nil {
			return "", fmt.Errorf("gemini: %d %s", code, out.Error.Message)
		}
		return "", fmt.Errorf("gemini: unexpected status %d", code)
	}

	var sb strings.Builder
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
