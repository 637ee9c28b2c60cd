package provider

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/vinolens/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	fencedBlockRegex = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(\\{.*?\\})\\s*```")
	vintageRegex     = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	alcoholRegex     = regexp.MustCompile(`(\d{1,2}(?:[.,]\d)?)\s*%`)
)

// knownRegions are wine region substrings the heuristic extractor recognizes
// in free label text. Lowercase.
var knownRegions = []string{
	"bordeaux", "burgundy", "bourgogne", "champagne", "rhone", "rhône",
	"loire", "alsace", "provence", "languedoc", "beaujolais", "chablis",
	"napa valley", "sonoma", "willamette", "columbia valley", "paso robles",
	"tuscany", "toscana", "piedmont", "piemonte", "chianti", "barolo",
	"veneto", "sicily", "rioja", "ribera del duero", "priorat", "rias baixas",
	"douro", "alentejo", "mosel", "rheingau", "pfalz", "barossa",
	"mclaren vale", "margaret river", "hunter valley", "marlborough",
	"central otago", "hawke's bay", "mendoza", "maipo", "colchagua",
	"stellenbosch", "swartland",
}

// knownGrapes are grape variety names the heuristic extractor recognizes.
// Lowercase; checked as substrings of the full text.
var knownGrapes = []string{
	"cabernet sauvignon", "cabernet franc", "sauvignon blanc", "pinot noir",
	"pinot grigio", "pinot gris", "pinot blanc", "chardonnay", "merlot",
	"syrah", "shiraz", "grenache", "garnacha", "tempranillo", "sangiovese",
	"nebbiolo", "barbera", "zinfandel", "primitivo", "malbec", "carmenere",
	"riesling", "gewurztraminer", "gewürztraminer", "chenin blanc",
	"viognier", "semillon", "albarino", "albariño", "verdejo", "vermentino",
	"mourvedre", "petite sirah", "petit verdot", "gamay", "muscat",
	"moscato", "prosecco", "glera", "touriga nacional",
}

// analysisPayload is the wire shape adapters ask backends to reply with.
// Vintage and alcohol tolerate both string and numeric JSON values because
// LLM replies are not consistent about quoting.
type analysisPayload struct {
	WineName       string                 `json:"wineName"`
	Name           string                 `json:"name"` // common alias
	Producer       string                 `json:"producer"`
	Winery         string                 `json:"winery"` // common alias
	Vintage        flexString             `json:"vintage"`
	Region         string                 `json:"region"`
	GrapeVarieties flexStrings            `json:"grapeVarieties"`
	Grapes         flexStrings            `json:"grapes"` // common alias
	AlcoholContent flexString             `json:"alcoholContent"`
	ExtractedText  string                 `json:"extractedText"`
	AdditionalInfo *domain.AdditionalInfo `json:"additionalInfo"`
}

// flexString unmarshals either a JSON string or a bare number into a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	// null or anything else: leave empty rather than failing the whole parse
	*f = ""
	return nil
}

// flexStrings unmarshals a JSON array of strings or a single comma-separated
// string into a slice.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				*f = append(*f, part)
			}
		}
		return nil
	}
	*f = nil
	return nil
}

// ParseAnalysis extracts a WineLabelAnalysis from a backend's raw reply text.
// Strategies are tried in order, first success wins:
//  1. fenced code block marked as structured data
//  2. first balanced JSON object anywhere in the text
//  3. heuristic line-based extraction over the raw text
//
// Returns ErrNoStructuredPayload when no strategy yields a populated field.
func ParseAnalysis(raw string) (*domain.WineLabelAnalysis, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrNoStructuredPayload)
	}

	if m := fencedBlockRegex.FindStringSubmatch(raw); m != nil {
		if analysis, ok := parsePayload(m[1], raw); ok {
			return analysis, nil
		}
	}

	if obj := firstJSONObject(raw); obj != "" {
		if analysis, ok := parsePayload(obj, raw); ok {
			return analysis, nil
		}
	}

	if analysis := extractFromLines(raw); analysis != nil {
		return analysis, nil
	}

	return nil, fmt.Errorf("%w: no usable field extracted", domain.ErrNoStructuredPayload)
}

// parsePayload decodes a candidate JSON object into an analysis. Returns
// ok=false when decoding fails or every recognized key is absent, so the
// caller can fall through to the next strategy.
func parsePayload(candidate, raw string) (*domain.WineLabelAnalysis, bool) {
	var payload analysisPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, false
	}

	analysis := &domain.WineLabelAnalysis{
		WineName:       strings.TrimSpace(firstNonEmpty(payload.WineName, payload.Name)),
		Producer:       strings.TrimSpace(firstNonEmpty(payload.Producer, payload.Winery)),
		Vintage:        strings.TrimSpace(string(payload.Vintage)),
		Region:         strings.TrimSpace(payload.Region),
		AlcoholContent: strings.TrimSpace(string(payload.AlcoholContent)),
		ExtractedText:  strings.TrimSpace(payload.ExtractedText),
		AdditionalInfo: payload.AdditionalInfo,
	}
	if len(payload.GrapeVarieties) > 0 {
		analysis.GrapeVarieties = payload.GrapeVarieties
	} else {
		analysis.GrapeVarieties = payload.Grapes
	}

	if analysis.WineName == "" && analysis.Producer == "" && analysis.Vintage == "" &&
		analysis.Region == "" && len(analysis.GrapeVarieties) == 0 &&
		analysis.AlcoholContent == "" && analysis.ExtractedText == "" {
		return nil, false
	}

	if analysis.ExtractedText == "" {
		analysis.ExtractedText = raw
	}
	return analysis, true
}

// firstJSONObject scans for the first substring that is a syntactically
// complete JSON object (balanced braces, string-aware).
func firstJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// extractFromLines treats the reply as unordered label text lines and pulls
// out whatever pattern rules can identify. Returns nil when nothing matched.
func extractFromLines(raw string) *domain.WineLabelAnalysis {
	analysis := &domain.WineLabelAnalysis{ExtractedText: raw}
	lower := strings.ToLower(raw)

	if m := vintageRegex.FindString(raw); m != "" {
		analysis.Vintage = m
	}

	// A percentage-like token only counts as alcohol content near an
	// alcohol keyword; labels also print percentages for blends.
	if strings.Contains(lower, "alc") || strings.Contains(lower, "vol") || strings.Contains(lower, "abv") {
		if m := alcoholRegex.FindStringSubmatch(raw); m != nil {
			analysis.AlcoholContent = strings.ReplaceAll(m[1], ",", ".") + "%"
		}
	}

	for _, region := range knownRegions {
		if strings.Contains(lower, region) {
			analysis.Region = titleCase(region)
			break
		}
	}

	for _, grape := range knownGrapes {
		if strings.Contains(lower, grape) {
			analysis.GrapeVarieties = append(analysis.GrapeVarieties, titleCase(grape))
		}
	}

	// First non-empty line with actual letters is the best name guess,
	// the second such line the producer.
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); hasLetters(line) {
			lines = append(lines, line)
		}
	}
	if len(lines) > 0 {
		analysis.WineName = lines[0]
	}
	if len(lines) > 1 {
		analysis.Producer = lines[1]
	}

	if analysis.WineName == "" && analysis.Vintage == "" && analysis.Region == "" &&
		len(analysis.GrapeVarieties) == 0 && analysis.AlcoholContent == "" {
		return nil
	}
	return analysis
}

// hasLetters reports whether a line contains at least two letters, filtering
// out pure punctuation/number noise when guessing name and producer lines.
func hasLetters(s string) bool {
	count := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// titleCase uppercases the first letter of each word. Good enough for the
// fixed region/grape vocabularies above.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
