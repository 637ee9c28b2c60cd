package usecase

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/vinolens/backend/internal/domain"
)

const unknownPlaceholder = "Unknown"

// regionCountries maps known wine region substrings (lowercase) to the
// producing country, for synthesized records where only a region was read
// off the label.
var regionCountries = map[string]string{
	"bordeaux":         "France",
	"burgundy":         "France",
	"bourgogne":        "France",
	"champagne":        "France",
	"rhone":            "France",
	"rhône":            "France",
	"loire":            "France",
	"alsace":           "France",
	"provence":         "France",
	"languedoc":        "France",
	"beaujolais":       "France",
	"chablis":          "France",
	"napa valley":      "USA",
	"sonoma":           "USA",
	"willamette":       "USA",
	"columbia valley":  "USA",
	"paso robles":      "USA",
	"tuscany":          "Italy",
	"toscana":          "Italy",
	"piedmont":         "Italy",
	"piemonte":         "Italy",
	"chianti":          "Italy",
	"veneto":           "Italy",
	"sicily":           "Italy",
	"rioja":            "Spain",
	"ribera del duero": "Spain",
	"priorat":          "Spain",
	"rias baixas":      "Spain",
	"douro":            "Portugal",
	"alentejo":         "Portugal",
	"mosel":            "Germany",
	"rheingau":         "Germany",
	"pfalz":            "Germany",
	"barossa":          "Australia",
	"mclaren vale":     "Australia",
	"margaret river":   "Australia",
	"hunter valley":    "Australia",
	"marlborough":      "New Zealand",
	"central otago":    "New Zealand",
	"hawke's bay":      "New Zealand",
	"mendoza":          "Argentina",
	"maipo":            "Chile",
	"colchagua":        "Chile",
	"stellenbosch":     "South Africa",
	"swartland":        "South Africa",
}

// grapePairings maps grape varieties (lowercase) to classic food pairings
// for synthesized records.
var grapePairings = map[string][]string{
	"cabernet sauvignon": {"Grilled steak", "Roast lamb", "Aged cheddar"},
	"merlot":             {"Roast chicken", "Mushroom dishes", "Soft cheeses"},
	"pinot noir":         {"Duck breast", "Salmon", "Mushroom risotto"},
	"syrah":              {"Barbecued meats", "Game", "Peppered dishes"},
	"shiraz":             {"Barbecued meats", "Game", "Peppered dishes"},
	"grenache":           {"Roast pork", "Spiced stews", "Charcuterie"},
	"tempranillo":        {"Iberico ham", "Roast pork", "Manchego"},
	"sangiovese":         {"Tomato-based pasta", "Pizza", "Pecorino"},
	"nebbiolo":           {"Truffle dishes", "Braised beef", "Risotto"},
	"malbec":             {"Grilled flank steak", "Empanadas", "Blue cheese"},
	"zinfandel":          {"Barbecue ribs", "Burgers", "Spicy sausage"},
	"chardonnay":         {"Roast chicken", "Lobster", "Creamy pasta"},
	"sauvignon blanc":    {"Goat cheese", "Oysters", "Green salads"},
	"riesling":           {"Thai curry", "Pork dishes", "Smoked fish"},
	"pinot grigio":       {"Light seafood", "Antipasti", "Fresh salads"},
	"pinot gris":         {"Light seafood", "Antipasti", "Fresh salads"},
	"chenin blanc":       {"Shellfish", "Goat cheese", "Fruit desserts"},
	"viognier":           {"Spiced chicken", "Crab", "Apricot dishes"},
	"gewurztraminer":     {"Asian cuisine", "Foie gras", "Münster cheese"},
}

// whiteGrapes classifies varieties for serving temperature inference when
// the provider did not tag a wine type.
var whiteGrapes = map[string]bool{
	"chardonnay":      true,
	"sauvignon blanc": true,
	"riesling":        true,
	"pinot grigio":    true,
	"pinot gris":      true,
	"pinot blanc":     true,
	"chenin blanc":    true,
	"viognier":        true,
	"gewurztraminer":  true,
	"gewürztraminer":  true,
	"albarino":        true,
	"albariño":        true,
	"verdejo":         true,
	"vermentino":      true,
	"semillon":        true,
	"muscat":          true,
	"moscato":         true,
	"glera":           true,
}

// servingTemps maps wine type to serving temperature guidance.
var servingTemps = map[string]string{
	"red":       "16-18°C",
	"white":     "8-12°C",
	"rose":      "8-10°C",
	"sparkling": "6-8°C",
	"dessert":   "6-8°C",
}

const defaultServingTemp = "12-16°C"

// SynthesizeWine builds a standalone Wine-shaped record purely from a label
// analysis, for when no catalog entry matched. Returns nil when the analysis
// carries no usable text at all.
func SynthesizeWine(a *domain.WineLabelAnalysis) *domain.Wine {
	if a == nil || a.IsEmpty() {
		return nil
	}

	name := strings.TrimSpace(a.WineName)
	if name == "" {
		name = unknownPlaceholder + " Wine"
	}
	producer := strings.TrimSpace(a.Producer)
	if producer == "" {
		producer = unknownPlaceholder
	}
	region := strings.TrimSpace(a.Region)
	if region == "" {
		region = unknownPlaceholder
	}

	vintage := 0
	if v, err := strconv.Atoi(strings.TrimSpace(a.Vintage)); err == nil {
		vintage = v
	}

	wineType := inferWineType(a)

	wine := &domain.Wine{
		ID:             uuid.NewString(),
		Name:           name,
		Producer:       producer,
		Vintage:        vintage,
		Region:         region,
		Country:        countryForRegion(region),
		GrapeVarieties: append([]string(nil), a.GrapeVarieties...),
		Type:           wineType,
		Rating:         estimateRating(a),
		FoodPairings:   pairingsForGrapes(a.GrapeVarieties),
		ServingTemp:    servingTempForType(wineType),
		Origin:         domain.WineOriginAnalysis,
	}
	return wine
}

// countryForRegion resolves a country via the fixed region table; substring
// lookup so "Napa Valley AVA" still resolves.
func countryForRegion(region string) string {
	lower := strings.ToLower(region)
	for key, country := range regionCountries {
		if strings.Contains(lower, key) {
			return country
		}
	}
	return unknownPlaceholder
}

// pairingsForGrapes unions pairings for every recognized grape, keeping first
// occurrence order.
func pairingsForGrapes(grapes []string) []string {
	var pairings []string
	seen := make(map[string]bool)
	for _, grape := range grapes {
		for _, p := range grapePairings[strings.ToLower(strings.TrimSpace(grape))] {
			if !seen[p] {
				pairings = append(pairings, p)
				seen[p] = true
			}
		}
	}
	if len(pairings) == 0 {
		pairings = []string{"Versatile with most dishes"}
	}
	return pairings
}

// inferWineType prefers the provider's classification tag, then falls back
// to the grape list.
func inferWineType(a *domain.WineLabelAnalysis) string {
	if a.AdditionalInfo != nil && a.AdditionalInfo.WineType != "" {
		return strings.ToLower(a.AdditionalInfo.WineType)
	}
	if len(a.GrapeVarieties) == 0 {
		return "red"
	}
	for _, grape := range a.GrapeVarieties {
		if !whiteGrapes[strings.ToLower(strings.TrimSpace(grape))] {
			return "red"
		}
	}
	return "white"
}

func servingTempForType(wineType string) string {
	if temp, ok := servingTemps[wineType]; ok {
		return temp
	}
	return defaultServingTemp
}

// estimateRating derives a plausible quality rating from how much the label
// said about itself. Heuristic, not a judgment of the wine.
func estimateRating(a *domain.WineLabelAnalysis) float64 {
	return float64(84 + completenessSignals(a))
}
