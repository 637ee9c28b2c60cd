package domain

import (
	"strings"
	"time"
)

// WineLabelAnalysis is the normalized output of any label provider after
// parsing. Every field except ExtractedText and Confidence may be empty;
// Confidence is always stamped by the scorer before the record leaves the
// analysis service.
type WineLabelAnalysis struct {
	WineName       string          `json:"wineName"`
	Producer       string          `json:"producer"`
	Vintage        string          `json:"vintage"`
	Region         string          `json:"region"`
	GrapeVarieties []string        `json:"grapeVarieties"`
	AlcoholContent string          `json:"alcoholContent,omitempty"`
	ExtractedText  string          `json:"extractedText"`
	Confidence     int             `json:"confidence"` // clamped to [30, 95]
	AdditionalInfo *AdditionalInfo `json:"additionalInfo,omitempty"`
}

// AdditionalInfo carries supplementary classification tags a provider may
// identify on the label. Never required for correctness.
type AdditionalInfo struct {
	WineType       string `json:"wineType,omitempty"` // "red", "white", "rose", "sparkling", "dessert"
	Appellation    string `json:"appellation,omitempty"`
	Classification string `json:"classification,omitempty"`
}

// HasNameSignal reports whether the analysis carries a usable name or producer
// the orchestrator can anchor a catalog query on.
func (a *WineLabelAnalysis) HasNameSignal() bool {
	return strings.TrimSpace(a.WineName) != "" || strings.TrimSpace(a.Producer) != ""
}

// IsEmpty reports whether the analysis carries no usable text at all.
func (a *WineLabelAnalysis) IsEmpty() bool {
	return !a.HasNameSignal() &&
		strings.TrimSpace(a.Region) == "" &&
		len(a.GrapeVarieties) == 0 &&
		strings.TrimSpace(a.ExtractedText) == ""
}

// MatchResult is the pipeline's output for one analyzed label image.
// Wine is a catalog entry, a record synthesized from the analysis, or nil
// when neither the analysis nor the catalog yielded anything usable.
type MatchResult struct {
	Wine          *Wine              `json:"wine"`
	Confidence    int                `json:"confidence"`
	ExtractedText string             `json:"extractedText"`
	Analysis      *WineLabelAnalysis `json:"analysis"`
}

// HistoryEntry records one finished recognition for the history/favorites
// store. The recognition core never reads these back.
type HistoryEntry struct {
	ID        string      `json:"id"`
	Result    MatchResult `json:"result"`
	Favorite  bool        `json:"favorite"`
	CreatedAt time.Time   `json:"createdAt"`
}
