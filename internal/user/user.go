package user

import (
	"errors"
	"strings"

	"github.com/wichananm65/fyx-store/internal/address"
	"github.com/wichananm65/fyx-store/internal/cart"
	"github.com/wichananm65/fyx-store/internal/favorite"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrNoIdentity = errors.New("email or phone is required")
)

const DefaultType = "Customer"

// Profile is the signed-in customer's contact and shipping data.
type Profile struct {
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Name      string          `json:"name"`
	Address   address.Address `json:"address"`
	Type      string          `json:"type"`
	CreatedAt string          `json:"createdAt,omitempty"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}

// HasContact reports whether name and phone are both filled in, which the
// details step of checkout requires.
func (p Profile) HasContact() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Phone) != ""
}

// Entry is what the directory keeps per identity.
type Entry struct {
	Profile  Profile           `json:"profile"`
	Cart     cart.Cart         `json:"cart"`
	Wishlist favorite.Wishlist `json:"wishlist"`
}

// NormalizeIdentity returns the directory key for a login: the trimmed,
// lower-cased email when present, otherwise the phone's digits.
func NormalizeIdentity(email, phone string) (string, error) {
	if e := strings.ToLower(strings.TrimSpace(email)); e != "" {
		return e, nil
	}
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", ErrNoIdentity
	}
	return b.String(), nil
}

// ProfileUpdate carries the editable fields of a profile.
type ProfileUpdate struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Email   string          `json:"email"`
	Address address.Address `json:"address"`
}

// Apply merges u into p. Empty fields leave the old value; a supplied
// address replaces the old one with its line recomputed.
func (p Profile) Apply(u ProfileUpdate, now string) Profile {
	if v := strings.TrimSpace(u.Name); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(u.Phone); v != "" {
		p.Phone = v
	}
	if v := strings.ToLower(strings.TrimSpace(u.Email)); v != "" {
		p.Email = v
	}
	if u.Address != (address.Address{}) {
		p.Address = address.Normalize(u.Address)
	}
	p.UpdatedAt = now
	return p
}
