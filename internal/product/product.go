package product

import "strings"

// Product is a catalog entry. JSON tags follow the camelCase convention used
// across the storefront blobs.
type Product struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	OldPrice          float64  `json:"oldPrice,omitempty"`
	DiscountBadge     string   `json:"discountBadge,omitempty"`
	Category          string   `json:"category"`
	Image             string   `json:"image"`
	Stock             int      `json:"stock"`
	Featured          bool     `json:"featured,omitempty"`
	Options           []Option `json:"options,omitempty"`
	AllowCustomImages bool     `json:"allowCustomImages,omitempty"`
	Reviews           []Review `json:"reviews,omitempty"`
}

// Option is one variant axis, e.g. Size with values S, M and L.
type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Review struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

const (
	DefaultImage = "https://picsum.photos/800/800"
	DefaultStock = 100
)

// PruneOptions trims option names and values and drops the empty ones. An
// option left without values is dropped entirely.
func PruneOptions(opts []Option) []Option {
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		name := strings.TrimSpace(o.Name)
		if name == "" {
			continue
		}
		vals := make([]string, 0, len(o.Values))
		for _, v := range o.Values {
			if v = strings.TrimSpace(v); v != "" {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		out = append(out, Option{Name: name, Values: vals})
	}
	return out
}

// DefaultSelections picks the first value of every option.
func (p Product) DefaultSelections() map[string]string {
	sel := make(map[string]string, len(p.Options))
	for _, o := range p.Options {
		if len(o.Values) > 0 {
			sel[o.Name] = o.Values[0]
		}
	}
	return sel
}

// ResolveSelections keeps the caller's valid choices and fills every other
// option with its first value, so exactly one value per option is chosen.
func (p Product) ResolveSelections(chosen map[string]string) map[string]string {
	sel := p.DefaultSelections()
	for _, o := range p.Options {
		v, ok := chosen[o.Name]
		if !ok {
			continue
		}
		for _, allowed := range o.Values {
			if allowed == v {
				sel[o.Name] = v
				break
			}
		}
	}
	return sel
}

// Seed is the catalog a fresh store starts with.
func Seed() []Product {
	return []Product{
		{
			ID:                "1",
			Name:              "Photo Magazine",
			Description:       "Stories that inspire in high-quality print. Upload your favorite memories and we will compile them into a beautiful glossy magazine.",
			Price:             899,
			OldPrice:          999,
			DiscountBadge:     "-10%",
			Category:          "Magazine",
			Image:             "https://images.unsplash.com/photo-1544947950-fa07a98d237f?auto=format&fit=crop&q=80&w=800",
			Stock:             100,
			Featured:          true,
			AllowCustomImages: true,
			Options: []Option{
				{Name: "Paper Finish", Values: []string{"Glossy", "Matte"}},
				{Name: "Pages", Values: []string{"20 Pages", "40 Pages", "60 Pages"}},
			},
		},
		{
			ID:            "2",
			Name:          "Sleek iPhone Case",
			Description:   "Protect in style with premium matte finish.",
			Price:         249,
			OldPrice:      299,
			DiscountBadge: "-17%",
			Category:      "Phone Covers",
			Image:         "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?auto=format&fit=crop&q=80&w=800",
			Stock:         50,
			Featured:      true,
			Options: []Option{
				{Name: "Model", Values: []string{"iPhone 13", "iPhone 14", "iPhone 15", "iPhone 15 Pro"}},
				{Name: "Finish", Values: []string{"Matte", "Glossy"}},
			},
		},
		{
			ID:            "3",
			Name:          "Custom Gift Box",
			Description:   "Perfect for every occasion and celebration.",
			Price:         99,
			OldPrice:      149,
			DiscountBadge: "-34%",
			Category:      "Gift Accessories",
			Image:         "https://images.unsplash.com/photo-1513201099705-a9746e1e201f?auto=format&fit=crop&q=80&w=800",
			Stock:         200,
			Featured:      true,
			Options:       []Option{{Name: "Ribbon Color", Values: []string{"Red", "Gold", "Silver"}}},
		},
		{
			ID:            "4",
			Name:          "Classic Round T-Shirt",
			Description:   "Wear your creativity with comfort. 100% Cotton.",
			Price:         349,
			OldPrice:      399,
			DiscountBadge: "-13%",
			Category:      "Men's T-Shirts",
			Image:         "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&q=80&w=800",
			Stock:         150,
			Featured:      true,
			Options: []Option{
				{Name: "Size", Values: []string{"S", "M", "L", "XL", "XXL"}},
				{Name: "Color", Values: []string{"Black", "White", "Navy Blue", "Grey"}},
			},
		},
		{
			ID:            "5",
			Name:          "Classic Round T-Shirt",
			Description:   "Style meets comfort for every day. Premium fabric.",
			Price:         329,
			OldPrice:      379,
			DiscountBadge: "-13%",
			Category:      "Women's T-Shirts",
			Image:         "https://images.unsplash.com/photo-1503342217505-b0a15ec3261c?auto=format&fit=crop&q=80&w=800",
			Stock:         80,
			Featured:      true,
			Options: []Option{
				{Name: "Size", Values: []string{"XS", "S", "M", "L", "XL"}},
				{Name: "Color", Values: []string{"Black", "White", "Pink", "Lavender"}},
			},
		},
		{
			ID:            "6",
			Name:          "Abstract Art Poster",
			Description:   "Art that speaks to your unique style. High definition printing.",
			Price:         249,
			OldPrice:      299,
			DiscountBadge: "-17%",
			Category:      "Posters",
			Image:         "https://images.unsplash.com/photo-1579783902614-a3fb3927b6a5?auto=format&fit=crop&q=80&w=800",
			Stock:         300,
			Featured:      true,
			Options: []Option{
				{Name: "Size", Values: []string{"A5", "A4", "A3"}},
				{Name: "Material", Values: []string{"Glossy Paper", "Matte Paper", "Canvas Texture"}},
			},
		},
		{
			ID:            "7",
			Name:          "Ceramic Coffee Mug",
			Description:   "Start your day with warm memories.",
			Price:         249,
			OldPrice:      299,
			DiscountBadge: "-17%",
			Category:      "Mugs",
			Image:         "https://images.unsplash.com/photo-1514228742587-6b1558fcca3d?auto=format&fit=crop&q=80&w=800",
			Stock:         120,
			Featured:      true,
			Options:       []Option{{Name: "Color", Values: []string{"White", "Black"}}},
		},
		{
			ID:            "8",
			Name:          "Classic Wooden Frame",
			Description:   "Preserve your precious moments elegantly with handcrafted wood.",
			Price:         399,
			OldPrice:      499,
			DiscountBadge: "-20%",
			Category:      "Photo Frames",
			Image:         "https://images.unsplash.com/photo-1582555172866-f73bb12a2ab3?auto=format&fit=crop&q=80&w=800",
			Stock:         90,
			Featured:      true,
			Options: []Option{
				{Name: "Size", Values: []string{"5x7", "8x10", "A4", "A3"}},
				{Name: "Material", Values: []string{"Oak Wood", "Black Metal", "White Wood"}},
			},
		},
	}
}
