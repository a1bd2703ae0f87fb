package category

import "errors"

var (
	ErrNotFound  = errors.New("category not found")
	ErrEmptyName = errors.New("category name is required")
	ErrExists    = errors.New("category already exists")
)

// Seed is the category list a fresh store starts with.
func Seed() []string {
	return []string{
		"Photo Frames",
		"Posters",
		"Mugs",
		"Men's T-Shirts",
		"Women's T-Shirts",
		"Phone Covers",
		"Magazine",
		"Gift Accessories",
	}
}
