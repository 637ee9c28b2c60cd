package usecase

import (
	"reflect"
	"testing"

	"github.com/vinolens/backend/internal/domain"
)

func testCatalog() []domain.Wine {
	return []domain.Wine{
		{
			ID: "opus-one-2018", Name: "Opus One", Producer: "Opus One Winery",
			Vintage: 2018, Region: "Napa Valley", Country: "USA",
			GrapeVarieties: []string{"Cabernet Sauvignon", "Merlot"},
		},
		{
			ID: "margaux-2015", Name: "Château Margaux", Producer: "Château Margaux",
			Vintage: 2015, Region: "Bordeaux", Country: "France",
			GrapeVarieties: []string{"Cabernet Sauvignon", "Merlot"},
		},
		{
			ID: "cloudy-bay-2022", Name: "Cloudy Bay Sauvignon Blanc", Producer: "Cloudy Bay Vineyards",
			Vintage: 2022, Region: "Marlborough", Country: "New Zealand",
			GrapeVarieties: []string{"Sauvignon Blanc"},
		},
	}
}

func TestSearch(t *testing.T) {
	svc := NewMatchingService(testCatalog(), false)

	t.Run("finds entries by name token", func(t *testing.T) {
		results := svc.Search("opus")
		if len(results) != 1 {
			t.Fatalf("len(results) = %d, want 1", len(results))
		}
		if results[0].ID != "opus-one-2018" {
			t.Errorf("ID = %s, want opus-one-2018", results[0].ID)
		}
	})

	t.Run("finds entries by vintage year", func(t *testing.T) {
		results := svc.Search("2015")
		if len(results) != 1 || results[0].ID != "margaux-2015" {
			t.Fatalf("results = %v, want just margaux-2015", results)
		}
	})

	t.Run("matches are case insensitive", func(t *testing.T) {
		results := svc.Search("MARLBOROUGH")
		if len(results) != 1 || results[0].ID != "cloudy-bay-2022" {
			t.Fatalf("results = %v, want just cloudy-bay-2022", results)
		}
	})

	t.Run("strips punctuation for token lookup", func(t *testing.T) {
		// "opus," with trailing punctuation still matches after stripping
		results := svc.Search("opus,")
		if len(results) != 1 {
			t.Fatalf("len(results) = %d, want 1", len(results))
		}
	})

	t.Run("returns empty for short-token-only queries", func(t *testing.T) {
		for _, q := range []string{"ab", "a b c", "of to in", ""} {
			if results := svc.Search(q); len(results) != 0 {
				t.Errorf("Search(%q) = %d results, want 0", q, len(results))
			}
		}
	})

	t.Run("ranks whole-query match first", func(t *testing.T) {
		// All three are candidates ("sauvignon" appears in every grape
		// list), but only Cloudy Bay carries the full query in its name.
		results := svc.Search("sauvignon blanc")
		if len(results) != 3 {
			t.Fatalf("len(results) = %d, want 3", len(results))
		}
		if results[0].ID != "cloudy-bay-2022" {
			t.Errorf("top result = %s, want cloudy-bay-2022", results[0].ID)
		}
	})

	t.Run("is deterministic across repeated calls", func(t *testing.T) {
		first := svc.Search("cabernet sauvignon")
		second := svc.Search("cabernet sauvignon")
		if !reflect.DeepEqual(first, second) {
			t.Error("repeated searches returned different ordered output")
		}
	})

	t.Run("ties keep catalog iteration order", func(t *testing.T) {
		// Both reds carry cabernet sauvignon and neither has it in
		// name+producer, so both score zero and load order decides.
		results := svc.Search("cabernet")
		if len(results) != 2 {
			t.Fatalf("len(results) = %d, want 2", len(results))
		}
		if results[0].ID != "opus-one-2018" || results[1].ID != "margaux-2015" {
			t.Errorf("tie order = [%s, %s], want catalog order", results[0].ID, results[1].ID)
		}
	})
}

func TestBestMatch(t *testing.T) {
	svc := NewMatchingService(testCatalog(), false)

	t.Run("returns top ranked candidate", func(t *testing.T) {
		best := svc.BestMatch("Opus One Winery 2018")
		if best == nil {
			t.Fatal("BestMatch() = nil, want opus-one-2018")
		}
		if best.ID != "opus-one-2018" {
			t.Errorf("ID = %s, want opus-one-2018", best.ID)
		}
	})

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		if best := svc.BestMatch("zinfandel from nowhere"); best != nil {
			t.Errorf("BestMatch() = %v, want nil", best)
		}
	})

	t.Run("returns nil for empty query", func(t *testing.T) {
		if best := svc.BestMatch(""); best != nil {
			t.Errorf("BestMatch(\"\") = %v, want nil", best)
		}
	})
}
