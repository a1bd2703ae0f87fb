package address

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidCoordinates = errors.New("coordinates out of range")

// Geocoder turns coordinates into a postal address.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (Address, error)
}

// FakeGeocoder answers every lookup with the same address after Delay.
type FakeGeocoder struct {
	Result Address
	Delay  time.Duration
}

func NewFakeGeocoder() *FakeGeocoder {
	return &FakeGeocoder{
		Result: Address{
			House:   "441/574",
			Street:  "Rastogi nagar",
			City:    "Lucknow",
			State:   "Uttar pradesh",
			Pincode: "226003",
		},
		Delay: time.Second,
	}
}

func (g *FakeGeocoder) Reverse(ctx context.Context, lat, lng float64) (Address, error) {
	if g.Delay > 0 {
		t := time.NewTimer(g.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Address{}, ctx.Err()
		case <-t.C:
		}
	}
	return Normalize(g.Result), nil
}
