package usecase

import (
	"github.com/vinolens/backend/internal/domain"
)

// Scoring constants. The asymmetric floors are deliberate: an unmatched raw
// analysis is reported low-but-nonzero so the caller can still show
// something, while catalog membership is itself strong evidence and never
// reports below "plausible".
const (
	completenessIncrement = 20
	analysisFloor         = 30
	analysisCeiling       = 95
	catalogMatchBoost     = 15
	matchFloor            = 60
	matchCeiling          = 95
	minCompletenessFactor = 0.7
)

// ConfidenceScorer computes the 0-100 heuristic confidence values for
// analyses and catalog matches. Jitter, when set, adds a small offset before
// clamping so heuristic scores avoid suspiciously round numbers; it is never
// part of the scoring contract and stays nil in tests.
type ConfidenceScorer struct {
	Jitter func() int
}

// AnalysisScore computes the completeness score of a raw analysis: 20 points
// per populated signal (name, producer, vintage, region, any grape variety),
// clamped to [30, 95].
func (s *ConfidenceScorer) AnalysisScore(a *domain.WineLabelAnalysis) int {
	score := completenessIncrement * completenessSignals(a)
	if s.Jitter != nil {
		score += s.Jitter()
	}
	return clamp(score, analysisFloor, analysisCeiling)
}

// MatchScore computes the blended score once a candidate wine exists.
// Catalog-backed candidates get a fixed boost; the result is then scaled by
// a completeness factor in [0.7, 1.0] over six signals and clamped to
// [60, 95].
func (s *ConfidenceScorer) MatchScore(a *domain.WineLabelAnalysis, fromCatalog bool) int {
	score := clamp(completenessIncrement*completenessSignals(a), analysisFloor, analysisCeiling)

	if fromCatalog {
		score += catalogMatchBoost
		if score > matchCeiling {
			score = matchCeiling
		}
	}

	factor := minCompletenessFactor +
		(1.0-minCompletenessFactor)*float64(richnessSignals(a))/6.0
	score = int(float64(score) * factor)

	if s.Jitter != nil {
		score += s.Jitter()
	}
	return clamp(score, matchFloor, matchCeiling)
}

// completenessSignals counts the five core analysis signals.
func completenessSignals(a *domain.WineLabelAnalysis) int {
	count := 0
	if a.WineName != "" {
		count++
	}
	if a.Producer != "" {
		count++
	}
	if a.Vintage != "" {
		count++
	}
	if a.Region != "" {
		count++
	}
	if len(a.GrapeVarieties) > 0 {
		count++
	}
	return count
}

// richnessSignals counts the six broader signals used for the blended
// completeness factor (the five core ones plus alcohol content).
func richnessSignals(a *domain.WineLabelAnalysis) int {
	count := completenessSignals(a)
	if a.AlcoholContent != "" {
		count++
	}
	return count
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
