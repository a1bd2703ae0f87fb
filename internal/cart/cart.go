package cart

import (
	"errors"

	"github.com/wichananm65/fyx-store/internal/product"
)

var ErrIndexOutOfRange = errors.New("cart index out of range")

// Item is a product snapshot taken when it was added, plus the buyer's
// choices. Later catalog edits do not touch it.
type Item struct {
	product.Product
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions,omitempty"`
	UploadedImages  []string          `json:"uploadedImages,omitempty"`
}

func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is an ordered list of items. Identical adds are never merged.
type Cart []Item

func (c Cart) Total() float64 {
	var sum float64
	for _, it := range c {
		sum += it.Subtotal()
	}
	return sum
}

func (c Cart) Count() int {
	n := 0
	for _, it := range c {
		n += it.Quantity
	}
	return n
}

// Add appends a new entry for p. A nil product leaves the cart unchanged and
// reports false. Quantities below one become one, and every option gets
// exactly one selection.
func (c Cart) Add(p *product.Product, qty int, selections map[string]string, images []string) (Cart, bool) {
	if p == nil {
		return c, false
	}
	if qty < 1 {
		qty = 1
	}
	snap := *p
	snap.Options = append([]product.Option(nil), p.Options...)
	snap.Reviews = nil
	item := Item{
		Product:         snap,
		Quantity:        qty,
		SelectedOptions: p.ResolveSelections(selections),
	}
	if p.AllowCustomImages && len(images) > 0 {
		item.UploadedImages = append([]string(nil), images...)
	}
	next := make(Cart, 0, len(c)+1)
	next = append(next, c...)
	return append(next, item), true
}

// Remove drops the entry at index.
func (c Cart) Remove(index int) (Cart, error) {
	if index < 0 || index >= len(c) {
		return c, ErrIndexOutOfRange
	}
	next := make(Cart, 0, len(c)-1)
	next = append(next, c[:index]...)
	return append(next, c[index+1:]...), nil
}

// Clone copies the list and each item's mutable fields.
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	for i, it := range c {
		if it.SelectedOptions != nil {
			sel := make(map[string]string, len(it.SelectedOptions))
			for k, v := range it.SelectedOptions {
				sel[k] = v
			}
			it.SelectedOptions = sel
		}
		it.UploadedImages = append([]string(nil), it.UploadedImages...)
		out[i] = it
	}
	return out
}
