package address

import (
	"strings"
)

// Address is the structured postal address kept on a profile. Line is
// derived from the other fields on save.
type Address struct {
	House   string `json:"house"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	State   string `json:"state"`
	Line    string `json:"line"`
}

// ComposeLine joins the non-empty parts as "house, street, city, state pincode".
func ComposeLine(a Address) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.House, a.Street, a.City} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	tail := strings.TrimSpace(strings.TrimSpace(a.State) + " " + strings.TrimSpace(a.Pincode))
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}

// Normalize trims every field and recomputes Line. When no structured field
// is set, a free-form Line is kept as entered.
func Normalize(a Address) Address {
	a.House = strings.TrimSpace(a.House)
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.Pincode = strings.TrimSpace(a.Pincode)
	a.State = strings.TrimSpace(a.State)
	if line := ComposeLine(a); line != "" {
		a.Line = line
	} else {
		a.Line = strings.TrimSpace(a.Line)
	}
	return a
}
