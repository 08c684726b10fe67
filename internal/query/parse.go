package query

import (
	"strings"

	"github.com/runger/trove/internal/model"
)

// UnifiedSearchOperators is the structured part of a parsed query.
// Zero values mean "not supplied". Positive and negated forms of the
// same concept are independent and combine with AND semantics.
type UnifiedSearchOperators struct {
	Type    model.EntityKind // scope search to one entity kind
	Space   string           // substring match against a space name
	SpaceID string           // exact space id match

	Tags    []string
	NotTags []string

	States    []string // thread-state tokens: pinned, favorite, archived
	NotStates []string

	HasNote        bool
	NotHasNote     bool
	HasCitation    bool
	NotHasCitation bool

	Verbatim bool // phrase-only matching; no per-token fallback
}

// ParsedUnifiedSearchQuery is the full parse result: the free-text
// remainder, its normalized form, and the extracted operator set.
type ParsedUnifiedSearchQuery struct {
	Text      string
	Query     NormalizedQuery
	Operators UnifiedSearchOperators
}

// Thread-state tokens accepted by is:/-is:.
const (
	StatePinned   = "pinned"
	StateFavorite = "favorite"
	StateArchived = "archived"
)

// ParseUnifiedSearchQuery tokenizes raw and classifies each token as a
// key:value operator or free text. Unrecognized keys and values that
// fail to normalize are kept as free text so the user's input is never
// silently dropped. Repeated multi-valued operators (tag:, is:)
// accumulate; for single-valued operators the last occurrence wins.
func ParseUnifiedSearchQuery(raw string) ParsedUnifiedSearchQuery {
	var ops UnifiedSearchOperators
	var freeText []string

	for _, token := range TokenizeQuery(raw) {
		if !consumeOperator(token, &ops) {
			freeText = append(freeText, token)
		}
	}

	text := strings.Join(freeText, " ")
	parsed := ParsedUnifiedSearchQuery{
		Text:      text,
		Query:     NormalizeQuery(text),
		Operators: ops,
	}
	if ops.Verbatim {
		// Phrase-only: matching must not fall back to per-token hits.
		parsed.Query.Tokens = nil
	}
	return parsed
}

// consumeOperator applies token to ops if it is a recognized operator,
// reporting whether it was consumed.
func consumeOperator(token string, ops *UnifiedSearchOperators) bool {
	idx := strings.Index(token, ":")
	if idx <= 0 {
		return false
	}
	key := strings.ToLower(token[:idx])
	value := token[idx+1:]

	negated := strings.HasPrefix(key, "-")
	if negated {
		key = key[1:]
	}
	if key == "" || value == "" {
		return false
	}

	switch key {
	case "type", "in":
		kind, ok := normalizeEntityKind(value)
		if !ok || negated {
			return false
		}
		ops.Type = kind
	case "space":
		if negated {
			return false
		}
		ops.Space = value
	case "spaceid", "space_id":
		if negated {
			return false
		}
		ops.SpaceID = value
	case "tag":
		if negated {
			ops.NotTags = append(ops.NotTags, value)
		} else {
			ops.Tags = append(ops.Tags, value)
		}
	case "has":
		switch normalizeHasValue(value) {
		case "note":
			if negated {
				ops.NotHasNote = true
			} else {
				ops.HasNote = true
			}
		case "citation":
			if negated {
				ops.NotHasCitation = true
			} else {
				ops.HasCitation = true
			}
		default:
			return false
		}
	case "is":
		state, ok := normalizeStateValue(value)
		if !ok {
			return false
		}
		if negated {
			ops.NotStates = append(ops.NotStates, state)
		} else {
			ops.States = append(ops.States, state)
		}
	case "verbatim", "exact":
		b, ok := normalizeBoolValue(value)
		if !ok {
			return false
		}
		if negated {
			b = !b
		}
		ops.Verbatim = b
	default:
		return false
	}
	return true
}

// normalizeEntityKind accepts singular and plural kind names.
func normalizeEntityKind(value string) (model.EntityKind, bool) {
	switch strings.ToLower(value) {
	case "thread", "threads":
		return model.KindThread, true
	case "space", "spaces":
		return model.KindSpace, true
	case "collection", "collections":
		return model.KindCollection, true
	case "file", "files":
		return model.KindFile, true
	case "task", "tasks":
		return model.KindTask, true
	}
	return "", false
}

// normalizeHasValue maps has: values onto "note" or "citation".
func normalizeHasValue(value string) string {
	switch strings.ToLower(value) {
	case "note", "notes":
		return "note"
	case "citation", "citations", "source", "sources", "cite":
		return "citation"
	}
	return ""
}

// normalizeStateValue maps is: values onto a thread-state token.
func normalizeStateValue(value string) (string, bool) {
	switch strings.ToLower(value) {
	case StatePinned:
		return StatePinned, true
	case StateFavorite, "favorited":
		return StateFavorite, true
	case StateArchived:
		return StateArchived, true
	}
	return "", false
}

// normalizeBoolValue parses the boolean spellings verbatim: accepts.
func normalizeBoolValue(value string) (bool, bool) {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
