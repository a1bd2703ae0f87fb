// Package checkout holds the three-step checkout flow and the payment
// preconditions checked before an order is committed.
package checkout

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

type Step string

const (
	StepDetails Step = "details"
	StepReview  Step = "review"
	StepPayment Step = "payment"
)

type Method string

const (
	MethodUPI Method = "upi"
	MethodCOD Method = "cod"
)

var (
	ErrProfileIncomplete    = errors.New("name and phone are required before continuing")
	ErrLastStep             = errors.New("payment is the last checkout step")
	ErrUnknownMethod        = errors.New("unknown payment method")
	ErrNoPaymentMethod      = errors.New("select a payment method")
	ErrPaymentProofRequired = errors.New("upload the payment screenshot")
	ErrPaymentNotConfirmed  = errors.New("confirm that the payment was made")
	ErrEmptyCart            = errors.New("cart is empty")
)

// Payment is what the buyer chose on the payment step.
type Payment struct {
	Method     Method `json:"method"`
	ProofImage string `json:"proofImage,omitempty"`
	UPIID      string `json:"upiId,omitempty"`
	Confirmed  bool   `json:"confirmed"`
}

// Flow is one session's position in checkout. Not safe for concurrent use.
type Flow struct {
	step    Step
	payment Payment
}

func NewFlow() *Flow {
	return &Flow{step: StepDetails}
}

func (f *Flow) Step() Step { return f.step }

func (f *Flow) Payment() Payment { return f.payment }

// Next advances one step. Leaving details needs a name and phone on the
// profile; the caller sends the user to profile editing on
// ErrProfileIncomplete.
func (f *Flow) Next(hasContact bool) (Step, error) {
	switch f.step {
	case StepDetails:
		if !hasContact {
			return f.step, ErrProfileIncomplete
		}
		f.step = StepReview
	case StepReview:
		f.step = StepPayment
	default:
		return f.step, ErrLastStep
	}
	return f.step, nil
}

// Back returns one step; at details it stays put.
func (f *Flow) Back() Step {
	switch f.step {
	case StepPayment:
		f.step = StepReview
	case StepReview:
		f.step = StepDetails
	}
	return f.step
}

func (f *Flow) SelectPayment(p Payment) error {
	switch p.Method {
	case MethodUPI, MethodCOD:
	default:
		return ErrUnknownMethod
	}
	p.ProofImage = strings.TrimSpace(p.ProofImage)
	p.UPIID = strings.TrimSpace(p.UPIID)
	f.payment = p
	return nil
}

// Reset puts the flow back on details and forgets the payment.
func (f *Flow) Reset() {
	f.step = StepDetails
	f.payment = Payment{}
}

// PaymentVerifier decides whether a payment may be committed.
type PaymentVerifier interface {
	Verify(ctx context.Context, p Payment) error
}

// ManualVerifier accepts cash on delivery as is, and UPI once the buyer has
// uploaded a screenshot and ticked the confirmation box.
type ManualVerifier struct{}

func (ManualVerifier) Verify(_ context.Context, p Payment) error {
	switch p.Method {
	case "":
		return ErrNoPaymentMethod
	case MethodCOD:
		return nil
	case MethodUPI:
		if p.ProofImage == "" {
			return ErrPaymentProofRequired
		}
		if !p.Confirmed {
			return ErrPaymentNotConfirmed
		}
		return nil
	default:
		return ErrUnknownMethod
	}
}

// UPILink builds the deep link handed to a UPI app.
func UPILink(payee string, amount float64, note string) string {
	return "upi://pay?payee=" + url.QueryEscape(payee) +
		"&amount=" + strconv.FormatFloat(amount, 'f', -1, 64) +
		"&currency=INR&note=" + url.QueryEscape(note)
}
