package provider

import (
	"context"
	"math/rand"
	"sync"

	"github.com/vinolens/backend/internal/domain"
)

// exemplarAnalyses are the fixed development records the mock provider cycles
// through. They cover the common label shapes (old world, new world, white,
// sparkling) so the UI has realistic variety without any network call.
var exemplarAnalyses = []domain.WineLabelAnalysis{
	{
		WineName:       "Château Margaux",
		Producer:       "Château Margaux",
		Vintage:        "2015",
		Region:         "Bordeaux",
		GrapeVarieties: []string{"Cabernet Sauvignon", "Merlot", "Petit Verdot", "Cabernet Franc"},
		AlcoholContent: "13.5%",
		ExtractedText:  "Château Margaux\nGrand Vin\nMargaux 2015\nAppellation Margaux Contrôlée\nMis en bouteille au château\n13.5% vol",
		AdditionalInfo: &domain.AdditionalInfo{
			WineType:       "red",
			Appellation:    "Margaux",
			Classification: "Premier Grand Cru Classé",
		},
	},
	{
		WineName:       "Opus One",
		Producer:       "Opus One Winery",
		Vintage:        "2018",
		Region:         "Napa Valley",
		GrapeVarieties: []string{"Cabernet Sauvignon", "Petit Verdot", "Merlot"},
		AlcoholContent: "14.5%",
		ExtractedText:  "Opus One\n2018\nNapa Valley\nRed Wine\nOakville, California\nAlc. 14.5% by vol.",
		AdditionalInfo: &domain.AdditionalInfo{
			WineType:    "red",
			Appellation: "Oakville",
		},
	},
	{
		WineName:       "Cloudy Bay Sauvignon Blanc",
		Producer:       "Cloudy Bay Vineyards",
		Vintage:        "2022",
		Region:         "Marlborough",
		GrapeVarieties: []string{"Sauvignon Blanc"},
		AlcoholContent: "13%",
		ExtractedText:  "Cloudy Bay\nSauvignon Blanc\nMarlborough 2022\nWine of New Zealand\n13% vol",
		AdditionalInfo: &domain.AdditionalInfo{
			WineType: "white",
		},
	},
	{
		WineName:       "Dom Pérignon",
		Producer:       "Moët & Chandon",
		Vintage:        "2012",
		Region:         "Champagne",
		GrapeVarieties: []string{"Chardonnay", "Pinot Noir"},
		AlcoholContent: "12.5%",
		ExtractedText:  "Dom Pérignon\nVintage 2012\nChampagne\nBrut\nÉpernay, France\n12.5% vol",
		AdditionalInfo: &domain.AdditionalInfo{
			WineType:       "sparkling",
			Appellation:    "Champagne",
			Classification: "Brut",
		},
	},
	{
		WineName:       "Tignanello",
		Producer:       "Marchesi Antinori",
		Vintage:        "2019",
		Region:         "Tuscany",
		GrapeVarieties: []string{"Sangiovese", "Cabernet Sauvignon", "Cabernet Franc"},
		AlcoholContent: "14%",
		ExtractedText:  "Tignanello\nAntinori\nToscana IGT 2019\nImbottigliato all'origine\n14% vol",
		AdditionalInfo: &domain.AdditionalInfo{
			WineType:    "red",
			Appellation: "Toscana IGT",
		},
	},
}

// MockProvider returns deterministic exemplar analyses without any network
// call. Used for development mode and as the degraded-state fallback, so one
// instance serves every in-flight request; rand.Rand is not safe for
// concurrent use and the mutex serializes draws from it.
type MockProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockProvider creates the stub provider. rng selects which exemplar each
// call returns; pass a seeded source in tests for determinism, or nil to
// always return the first exemplar.
func NewMockProvider(rng *rand.Rand) *MockProvider {
	return &MockProvider{rng: rng}
}

// Name implements domain.LabelProvider.
func (p *MockProvider) Name() string {
	return "mock"
}

// AnalyzeImage implements domain.LabelProvider. Never fails.
func (p *MockProvider) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*domain.WineLabelAnalysis, error) {
	idx := 0
	if p.rng != nil {
		p.mu.Lock()
		idx = p.rng.Intn(len(exemplarAnalyses))
		p.mu.Unlock()
	}

	// Copy so callers can't mutate the shared exemplar set.
	analysis := exemplarAnalyses[idx]
	analysis.GrapeVarieties = append([]string(nil), exemplarAnalyses[idx].GrapeVarieties...)
	if exemplarAnalyses[idx].AdditionalInfo != nil {
		info := *exemplarAnalyses[idx].AdditionalInfo
		analysis.AdditionalInfo = &info
	}
	return &analysis, nil
}
