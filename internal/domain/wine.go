package domain

import (
	"strconv"
	"strings"
)

// Wine origin tags distinguish curated catalog entries from records synthesized
// out of a label analysis when no catalog entry matched.
const (
	WineOriginCatalog  = "catalog"
	WineOriginAnalysis = "derived-from-analysis"
)

// Wine represents a single catalog entry. Catalog wines are loaded once at
// startup and never mutated afterwards.
type Wine struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Producer       string   `json:"producer"`
	Vintage        int      `json:"vintage"`
	Region         string   `json:"region"`
	Country        string   `json:"country"`
	GrapeVarieties []string `json:"grapeVarieties"`
	Type           string   `json:"type"` // "red", "white", "rose", "sparkling", "dessert"
	Rating         float64  `json:"rating"`
	Price          float64  `json:"price,omitempty"`
	TastingNotes   Notes    `json:"tastingNotes"`
	FoodPairings   []string `json:"foodPairings"`
	ServingTemp    string   `json:"servingTemp"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	Origin         string   `json:"origin"`
}

// Notes contains the tasting-note text fields for a wine
type Notes struct {
	Aroma  string `json:"aroma,omitempty"`
	Palate string `json:"palate,omitempty"`
	Finish string `json:"finish,omitempty"`
}

// SearchableText returns the lowercase concatenation of the fields the catalog
// matcher runs token lookups against.
func (w *Wine) SearchableText() string {
	parts := []string{w.Name, w.Producer, w.Region, w.Country}
	parts = append(parts, w.GrapeVarieties...)
	if w.Vintage > 0 {
		parts = append(parts, strconv.Itoa(w.Vintage))
	}
	return strings.ToLower(strings.Join(parts, " "))
}
