package model

import (
	"fmt"
	"strings"
)

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

const FallbackColor = "bg-gray-400"

var Palette = []string{
	"bg-red-500", "bg-orange-500", "bg-amber-500", "bg-yellow-500",
	"bg-lime-500", "bg-green-500", "bg-emerald-500", "bg-teal-500",
	"bg-cyan-500", "bg-sky-500", "bg-blue-500", "bg-indigo-500",
	"bg-violet-500", "bg-purple-500", "bg-fuchsia-500", "bg-pink-500", "bg-rose-500",
}

func DefaultColor() string {
	return Palette[0]
}

func IsPaletteColor(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

// NextColor cycles through the palette, wrapping at the end. Unknown colors
// restart at the first entry.
func NextColor(color string, delta int) string {
	idx := -1
	for i, c := range Palette {
		if c == color {
			idx = i
			break
		}
	}
	if idx < 0 {
		return DefaultColor()
	}
	n := len(Palette)
	return Palette[((idx+delta)%n+n)%n]
}

func NewCategory(name, color string) Category {
	if !IsPaletteColor(color) {
		color = DefaultColor()
	}
	return Category{ID: NewID(PrefixCategory), Name: strings.TrimSpace(name), Color: color}
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("category: %w", ErrMissingID)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category %s: %w", c.ID, ErrMissingName)
	}
	return nil
}

// SameName reports whether two category names match case-insensitively.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

func FindCategoryByName(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if SameName(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// ResolveCategory returns the existing category matching name, or a new one
// with the given color when none matches. created reports which happened.
func ResolveCategory(categories []Category, name, color string) (cat Category, created bool) {
	if existing, ok := FindCategoryByName(categories, strings.TrimSpace(name)); ok {
		return existing, false
	}
	return NewCategory(name, color), true
}
