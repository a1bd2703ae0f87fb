package favorite

import "github.com/wichananm65/fyx-store/internal/product"

// Wishlist is an ordered set of product ids.
type Wishlist []string

func (w Wishlist) Contains(productID string) bool {
	for _, id := range w {
		if id == productID {
			return true
		}
	}
	return false
}

// Toggle removes productID when present and appends it otherwise. The
// second result reports whether it was added.
func (w Wishlist) Toggle(productID string) (Wishlist, bool) {
	next := make(Wishlist, 0, len(w)+1)
	removed := false
	for _, id := range w {
		if id == productID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if removed {
		return next, false
	}
	return append(next, productID), true
}

func (w Wishlist) Clone() Wishlist {
	return append(Wishlist{}, w...)
}

// Products resolves the wishlist against the catalog in catalog order.
// Ids of deleted products are skipped.
func (w Wishlist) Products(catalog []product.Product) []product.Product {
	out := []product.Product{}
	for _, p := range catalog {
		if w.Contains(p.ID) {
			out = append(out, p)
		}
	}
	return out
}
