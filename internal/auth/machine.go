package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
)

// State is a step of the storefront login flow.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateMethodSelect  State = "login-method-select"
	StatePhoneInput    State = "phone-input"
	StateOTPPending    State = "otp-pending"
	StateEmailInput    State = "email-input"
	StateOAuthLoading  State = "oauth-loading"
	StateAuthenticated State = "authenticated"
)

type Method string

const (
	MethodPhone Method = "phone"
	MethodEmail Method = "email"
	MethodOAuth Method = "oauth"
)

var (
	ErrInvalidTransition = errors.New("action not allowed in the current login state")
	ErrPhoneRequired     = errors.New("phone number is required")
	ErrInvalidOTP        = errors.New("invalid verification code")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrUnknownMethod     = errors.New("unknown login method")
	ErrBusy              = errors.New("login already in progress")
	ErrLoginRequired     = errors.New("login required")
)

// Identity is who a completed login says the user is.
type Identity struct {
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Name   string `json:"name,omitempty"`
	Method Method `json:"method"`
}

// Machine tracks one session's position in the login flow. It is not safe
// for concurrent use; the owning session serialises access.
type Machine struct {
	provider Provider
	state    State
	phone    string
}

func NewMachine(p Provider) *Machine {
	return &Machine{provider: p, state: StateAnonymous}
}

func (m *Machine) State() State { return m.state }

func (m *Machine) Authenticated() bool { return m.state == StateAuthenticated }

// Open starts (or restarts) method selection.
func (m *Machine) Open() error {
	switch m.state {
	case StateAuthenticated:
		return ErrInvalidTransition
	case StateOAuthLoading:
		return ErrBusy
	}
	m.state = StateMethodSelect
	m.phone = ""
	return nil
}

// Choose moves from method selection to the input step of method. Choosing
// oauth enters oauth-loading; the caller then runs OAuth and reports back
// with FinishOAuth.
func (m *Machine) Choose(method Method) error {
	if m.state == StateOAuthLoading {
		return ErrBusy
	}
	if m.state != StateMethodSelect {
		return ErrInvalidTransition
	}
	switch method {
	case MethodPhone:
		m.state = StatePhoneInput
	case MethodEmail:
		m.state = StateEmailInput
	case MethodOAuth:
		m.state = StateOAuthLoading
	default:
		return ErrUnknownMethod
	}
	return nil
}

// SubmitPhone sends a code to phone. It may be called again from
// otp-pending to resend.
func (m *Machine) SubmitPhone(ctx context.Context, phone string) error {
	if m.state != StatePhoneInput && m.state != StateOTPPending {
		return ErrInvalidTransition
	}
	digits := PhoneDigits(phone)
	if digits == "" {
		return ErrPhoneRequired
	}
	if err := m.provider.SendOTP(ctx, digits); err != nil {
		return err
	}
	m.phone = digits
	m.state = StateOTPPending
	return nil
}

// VerifyOTP checks code. A wrong code leaves the machine in otp-pending.
func (m *Machine) VerifyOTP(ctx context.Context, code string) (Identity, error) {
	if m.state != StateOTPPending {
		return Identity{}, ErrInvalidTransition
	}
	ok, err := m.provider.VerifyOTP(ctx, m.phone, strings.TrimSpace(code))
	if err != nil {
		return Identity{}, err
	}
	if !ok {
		return Identity{}, ErrInvalidOTP
	}
	m.state = StateAuthenticated
	return Identity{Phone: m.phone, Method: MethodPhone}, nil
}

// SubmitEmail signs in directly with any plausible address.
func (m *Machine) SubmitEmail(email string) (Identity, error) {
	if m.state != StateEmailInput {
		return Identity{}, ErrInvalidTransition
	}
	addr, ok := PlausibleEmail(email)
	if !ok {
		return Identity{}, ErrInvalidEmail
	}
	m.state = StateAuthenticated
	return Identity{Email: addr, Method: MethodEmail}, nil
}

// FinishOAuth completes the oauth-loading step with the provider's answer.
// A provider error returns the flow to method selection.
func (m *Machine) FinishOAuth(id Identity, err error) (Identity, error) {
	if m.state != StateOAuthLoading {
		return Identity{}, ErrInvalidTransition
	}
	if err != nil {
		m.state = StateMethodSelect
		return Identity{}, err
	}
	id.Email = strings.ToLower(strings.TrimSpace(id.Email))
	id.Method = MethodOAuth
	m.state = StateAuthenticated
	return id, nil
}

// Cancel abandons an unfinished login.
func (m *Machine) Cancel() error {
	if m.state == StateAuthenticated {
		return ErrInvalidTransition
	}
	m.state = StateAnonymous
	m.phone = ""
	return nil
}

func (m *Machine) Logout() error {
	if m.state != StateAuthenticated {
		return ErrInvalidTransition
	}
	m.state = StateAnonymous
	m.phone = ""
	return nil
}

// Resume marks the machine authenticated for a session restored from the
// store.
func (m *Machine) Resume() {
	m.state = StateAuthenticated
	m.phone = ""
}

// PhoneDigits strips everything but digits.
func PhoneDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PlausibleEmail reports whether s looks like a bare address with a dotted
// domain, returning it trimmed and lower-cased.
func PlausibleEmail(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	a, err := mail.ParseAddress(s)
	if err != nil || a.Address != s {
		return "", false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", false
	}
	return s, true
}
