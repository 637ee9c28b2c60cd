package usecase

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/vinolens/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]`)

// Ranking constants
const (
	wholeQueryBonus = 10 // full query appears verbatim in name+producer
	tokenMatchScore = 1  // per query token found in name+producer
	minTokenLength  = 3  // tokens shorter than this are noise/initials
)

// MatchingService performs free-text search and best-match ranking over the
// wine catalog. The catalog slice is read-only; Search is pure and never
// suspends.
type MatchingService struct {
	wines              []domain.Wine
	enableDebugLogging bool
}

// NewMatchingService creates a matcher over the given catalog entries.
func NewMatchingService(wines []domain.Wine, enableDebugLogging bool) *MatchingService {
	return &MatchingService{
		wines:              wines,
		enableDebugLogging: enableDebugLogging,
	}
}

// Search returns catalog entries relevant to the query, most relevant first.
// Ties keep catalog iteration order (the sort is stable), so identical
// queries always return identical ordered output.
func (s *MatchingService) Search(query string) []domain.Wine {
	normalized := strings.ToLower(strings.TrimSpace(query))
	tokens := queryTokens(normalized)
	if len(tokens) == 0 {
		return nil
	}

	var candidates []domain.Wine
	for _, wine := range s.wines {
		if matchesAnyToken(&wine, tokens) {
			candidates = append(candidates, wine)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return relevance(&candidates[i], normalized, tokens) > relevance(&candidates[j], normalized, tokens)
	})

	if s.enableDebugLogging {
		log.Printf("[MATCH] query %q: %d tokens, %d candidates", query, len(tokens), len(candidates))
	}
	return candidates
}

// BestMatch returns the top-ranked candidate for the query, or nil when
// nothing in the catalog matches.
func (s *MatchingService) BestMatch(query string) *domain.Wine {
	results := s.Search(query)
	if len(results) == 0 {
		return nil
	}
	best := results[0]
	if s.enableDebugLogging {
		log.Printf("[MATCH] best match for %q: %s (%s)", query, best.Name, best.Producer)
	}
	return &best
}

// queryTokens splits a normalized query on whitespace and discards tokens of
// length <= 2 (noise words and initials).
func queryTokens(normalized string) []string {
	var tokens []string
	for _, tok := range strings.Fields(normalized) {
		if len(tok) >= minTokenLength {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// matchesAnyToken reports whether any query token appears in the wine's
// searchable text, either as-is or with non-alphanumeric characters stripped
// (absorbs curly quotes, accents written as punctuation, and similar
// mismatches).
func matchesAnyToken(wine *domain.Wine, tokens []string) bool {
	text := wine.SearchableText()
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			return true
		}
		if stripped := nonAlphanumericRegex.ReplaceAllString(tok, ""); stripped != "" && strings.Contains(text, stripped) {
			return true
		}
	}
	return false
}

// relevance ranks a candidate against the query using only name + producer:
// the full query as a verbatim substring scores highest, then one point per
// matching token.
func relevance(wine *domain.Wine, normalized string, tokens []string) int {
	base := strings.ToLower(wine.Name + " " + wine.Producer)

	score := 0
	if strings.Contains(base, normalized) {
		score += wholeQueryBonus
	}
	for _, tok := range tokens {
		if strings.Contains(base, tok) {
			score += tokenMatchScore
		}
	}
	return score
}
