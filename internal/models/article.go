// Package models defines the content entities the console works with.
// Shapes mirror the upstream API's JSON responses.
package models

import (
	"strings"
	"time"
)

// Category is the fixed editorial category set.
type Category string

const (
	CategoryTechnology    Category = "Tecnologia"
	CategoryHealth        Category = "Saúde"
	CategoryCrime         Category = "Crimes"
	CategoryPolitics      Category = "Política"
	CategorySports        Category = "Esportes"
	CategoryEntertainment Category = "Entretenimento"
	CategoryEconomy       Category = "Economia"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryTechnology,
		CategoryHealth,
		CategoryCrime,
		CategoryPolitics,
		CategorySports,
		CategoryEntertainment,
		CategoryEconomy,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Article is a published news item. City and Region carry denormalized
// location names as returned by the upstream API; CityID is only present
// on authoring payloads. Image order is display order and the first
// image is the card thumbnail.
type Article struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	CityID    int       `json:"city_id,omitempty"`
	City      string    `json:"city,omitempty"`
	Region    string    `json:"region,omitempty"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"created_at"`
}

// PrimaryImage returns the thumbnail reference, or "" when the article
// has no images.
func (a *Article) PrimaryImage() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0]
}

// ResolveImageURL turns an upstream image reference into a displayable
// URL. Absolute references pass through unchanged; relative storage
// paths are joined to the upstream base origin. Windows-style path
// separators in stored references are normalized first.
func ResolveImageURL(base, ref string) string {
	ref = strings.ReplaceAll(ref, `\`, "/")
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
}
