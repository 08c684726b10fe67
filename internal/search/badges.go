package search

import (
	"strings"

	"github.com/runger/trove/internal/query"
)

// MatchBadge names a thread facet that matched the query, for result
// highlighting.
type MatchBadge string

const (
	BadgeTitle    MatchBadge = "title"
	BadgeQuestion MatchBadge = "question"
	BadgeTag      MatchBadge = "tag"
	BadgeSpace    MatchBadge = "space"
	BadgeNote     MatchBadge = "note"
	BadgeCitation MatchBadge = "citation"
	BadgeAnswer   MatchBadge = "answer"
)

// ThreadMatchInputs is the set of a thread's searchable facets used to
// compute match badges.
type ThreadMatchInputs struct {
	Title     string
	Question  string
	Answer    string
	Tags      []string
	SpaceName string
	Note      string
	Citations []string
}

// ComputeThreadMatchBadges reports which facets of a thread hit the
// query, in fixed order. The question badge stands in for the title
// badge only when the thread has no title; at most one of the two is
// emitted. An empty query yields no badges.
func ComputeThreadMatchBadges(in ThreadMatchInputs, q query.NormalizedQuery) []MatchBadge {
	if q.IsEmpty() {
		return nil
	}

	var badges []MatchBadge
	if facetHit(in.Title, q) {
		badges = append(badges, BadgeTitle)
	} else if in.Title == "" && facetHit(in.Question, q) {
		badges = append(badges, BadgeQuestion)
	}
	if anyFacetHit(in.Tags, q) {
		badges = append(badges, BadgeTag)
	}
	if facetHit(in.SpaceName, q) {
		badges = append(badges, BadgeSpace)
	}
	if facetHit(in.Note, q) {
		badges = append(badges, BadgeNote)
	}
	if anyFacetHit(in.Citations, q) {
		badges = append(badges, BadgeCitation)
	}
	if facetHit(in.Answer, q) {
		badges = append(badges, BadgeAnswer)
	}
	return badges
}

// facetHit tests a single facet for a phrase-or-token hit: the full
// normalized phrase as a substring, or any one query token. This is
// looser than MatchesQuery (which needs every token across the
// combined text) because a badge marks where a hit came from, not
// whether the thread matched.
func facetHit(text string, q query.NormalizedQuery) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	if strings.Contains(lowered, q.Normalized) {
		return true
	}
	for _, tok := range q.Tokens {
		if strings.Contains(lowered, tok) {
			return true
		}
	}
	return false
}

func anyFacetHit(texts []string, q query.NormalizedQuery) bool {
	for _, t := range texts {
		if facetHit(t, q) {
			return true
		}
	}
	return false
}
