package search

import (
	"strings"

	"github.com/runger/trove/internal/query"
)

// WeightedField is one searchable text field with its importance
// multiplier. Title-like fields carry more weight than body fields.
type WeightedField struct {
	Text   string
	Weight float64
}

// Relevance tier bonuses, highest tier wins once per field. Token hits
// add on top, once per matching token. The relative ordering
// exact > prefix > substring > token is what matters; the magnitudes
// are tuning values.
const (
	scoreExact     = 20
	scorePrefix    = 12
	scoreSubstring = 8
	scoreToken     = 1
)

// ComputeRelevanceScore scores fields against q. Each field earns the
// highest applicable tier bonus (exact equality, prefix, or substring
// of the full normalized phrase) times its weight, plus one token
// bonus per query token found in the field. An empty query scores 0.
func ComputeRelevanceScore(fields []WeightedField, q query.NormalizedQuery) float64 {
	if q.Normalized == "" {
		return 0
	}
	var total float64
	for _, f := range fields {
		total += scoreLoweredField(strings.ToLower(f.Text), f.Weight, q)
	}
	return total
}

// ComputeRelevanceScoreLowered is ComputeRelevanceScore for fields
// whose Text is already lowercased. It must produce identical scores
// to ComputeRelevanceScore given identically lowered input.
func ComputeRelevanceScoreLowered(fields []WeightedField, q query.NormalizedQuery) float64 {
	if q.Normalized == "" {
		return 0
	}
	var total float64
	for _, f := range fields {
		total += scoreLoweredField(f.Text, f.Weight, q)
	}
	return total
}

func scoreLoweredField(lowered string, weight float64, q query.NormalizedQuery) float64 {
	var score float64
	switch {
	case lowered == q.Normalized:
		score = scoreExact * weight
	case strings.HasPrefix(lowered, q.Normalized):
		score = scorePrefix * weight
	case strings.Contains(lowered, q.Normalized):
		score = scoreSubstring * weight
	}
	for _, tok := range q.Tokens {
		if strings.Contains(lowered, tok) {
			score += scoreToken * weight
		}
	}
	return score
}
