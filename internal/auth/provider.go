package auth

import (
	"context"
	"time"
)

// DefaultOTP is the single code the fixed provider accepts.
const DefaultOTP = "1234"

// Provider is the identity backend behind the login flow.
type Provider interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (bool, error)
	OAuth(ctx context.Context) (Identity, error)
}

// FixedProvider accepts one fixed code for every phone and answers OAuth
// with a canned identity after Delay.
type FixedProvider struct {
	Code     string
	Delay    time.Duration
	Identity Identity
}

func NewFixedProvider(code string, delay time.Duration) *FixedProvider {
	if code == "" {
		code = DefaultOTP
	}
	return &FixedProvider{
		Code:     code,
		Delay:    delay,
		Identity: Identity{Email: "google.user@gmail.com", Name: "Google User"},
	}
}

func (p *FixedProvider) SendOTP(ctx context.Context, phone string) error {
	return ctx.Err()
}

func (p *FixedProvider) VerifyOTP(ctx context.Context, phone, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return code == p.Code, nil
}

func (p *FixedProvider) OAuth(ctx context.Context) (Identity, error) {
	if p.Delay > 0 {
		t := time.NewTimer(p.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Identity{}, ctx.Err()
		case <-t.C:
		}
	}
	return p.Identity, nil
}
