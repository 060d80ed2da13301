package types

import (
	"fmt"
	"strings"
)

// Category is one of the fixed topical feeds
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryTechnology    Category = "technology"
	CategoryWorld         Category = "world"
	CategoryBusiness      Category = "business"
	CategoryHealth        Category = "health"
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
	CategoryScience       Category = "science"
)

// DefaultCategory is selected until the reader picks another one
const DefaultCategory = CategoryGeneral

var categories = []Category{
	CategoryGeneral,
	CategoryTechnology,
	CategoryWorld,
	CategoryBusiness,
	CategoryHealth,
	CategorySports,
	CategoryEntertainment,
	CategoryScience,
}

// Categories returns the categories in navigation order
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Valid reports whether c belongs to the fixed enumeration
func (c Category) Valid() bool {
	for _, v := range categories {
		if c == v {
			return true
		}
	}
	return false
}

// Title returns the category name with an upper-case first letter
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseCategory normalizes user input and rejects unknown categories
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
