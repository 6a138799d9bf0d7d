package suggest

import (
	"strings"

	"github.com/sandeepkv93/organizeme/internal/model"
)

// Selection is the outcome of picking a suggestion. Existing selections carry
// a stored category; drafts carry a name and the default color and still need
// to be confirmed (and given an id) before they are added.
type Selection struct {
	Category model.Category
	Existing bool
}

func Resolve(categories []model.Category, suggestion string) Selection {
	suggestion = strings.TrimSpace(suggestion)
	if c, ok := model.FindCategoryByName(categories, suggestion); ok {
		return Selection{Category: c, Existing: true}
	}
	return Selection{Category: model.Category{Name: suggestion, Color: model.DefaultColor()}}
}
