package model

import (
	"encoding/json"
	"strings"
)

// Decoders sanitize arbitrary persisted JSON into well-typed records.
// The persistence layer is outside our control (exports, old versions,
// hand-edited files), so nothing here returns an error: entries that
// are not objects or lack a stable id are dropped, and every malformed
// field degrades to a safe default.

// DecodeThreads decodes a persisted thread list. Entries without an id
// are dropped; unknown modes decode to "quick" and unknown source
// settings to "none".
func DecodeThreads(raw []byte) []Thread {
	var out []Thread
	for _, m := range decodeObjectList(raw) {
		id := stringField(m, "id")
		if strings.TrimSpace(id) == "" {
			continue
		}
		t := Thread{
			ID:        id,
			Title:     nameField(m, "title", ""),
			Question:  stringField(m, "question"),
			Answer:    stringField(m, "answer"),
			Tags:      stringListField(m, "tags"),
			SpaceID:   stringField(m, "space_id"),
			SpaceName: stringField(m, "space_name"),
			Note:      stringField(m, "note"),
			Citations: citationsField(m, "citations"),
			Mode:      enumField(m, "mode", ModeQuick, ModeQuick, ModeResearch),
			Sources:   enumField(m, "sources", SourcesNone, SourcesNone, SourcesWeb, SourcesAll),
			Pinned:    boolField(m, "pinned"),
			Favorite:  boolField(m, "favorite"),
			Archived:  boolField(m, "archived"),
			CreatedAt: timestampField(m, "created_at_unix_ms"),
			UpdatedAt: timestampField(m, "updated_at_unix_ms"),
		}
		if t.UpdatedAt == 0 {
			t.UpdatedAt = t.CreatedAt
		}
		out = append(out, t)
	}
	return out
}

// DecodeSpaces decodes a persisted space list.
func DecodeSpaces(raw []byte) []Space {
	var out []Space
	for _, m := range decodeObjectList(raw) {
		id := stringField(m, "id")
		if strings.TrimSpace(id) == "" {
			continue
		}
		out = append(out, Space{
			ID:          id,
			Name:        nameField(m, "name", "Untitled space"),
			Description: stringField(m, "description"),
			Tags:        stringListField(m, "tags"),
			CreatedAt:   timestampField(m, "created_at_unix_ms"),
		})
	}
	return out
}

// DecodeCollections decodes a persisted collection list.
func DecodeCollections(raw []byte) []Collection {
	var out []Collection
	for _, m := range decodeObjectList(raw) {
		id := stringField(m, "id")
		if strings.TrimSpace(id) == "" {
			continue
		}
		out = append(out, Collection{
			ID:          id,
			Name:        nameField(m, "name", "Untitled collection"),
			Description: stringField(m, "description"),
			ThreadIDs:   stringListField(m, "thread_ids"),
			CreatedAt:   timestampField(m, "created_at_unix_ms"),
		})
	}
	return out
}

// DecodeFiles decodes a persisted file-upload list.
func DecodeFiles(raw []byte) []FileUpload {
	var out []FileUpload
	for _, m := range decodeObjectList(raw) {
		id := stringField(m, "id")
		if strings.TrimSpace(id) == "" {
			continue
		}
		size := timestampField(m, "size_bytes") // same coercion: finite non-negative number or 0
		out = append(out, FileUpload{
			ID:        id,
			Name:      nameField(m, "name", "Untitled file"),
			MimeType:  stringField(m, "mime_type"),
			SizeBytes: size,
			Excerpt:   stringField(m, "excerpt"),
			CreatedAt: timestampField(m, "created_at_unix_ms"),
		})
	}
	return out
}

// DecodeTasks decodes a persisted scheduled-task list.
func DecodeTasks(raw []byte) []Task {
	var out []Task
	for _, m := range decodeObjectList(raw) {
		id := stringField(m, "id")
		if strings.TrimSpace(id) == "" {
			continue
		}
		out = append(out, Task{
			ID:        id,
			Title:     nameField(m, "title", "Untitled task"),
			Prompt:    stringField(m, "prompt"),
			SpaceID:   stringField(m, "space_id"),
			SpaceName: stringField(m, "space_name"),
			Cadence:   stringField(m, "cadence"),
			Enabled:   boolField(m, "enabled"),
			CreatedAt: timestampField(m, "created_at_unix_ms"),
			LastRunAt: timestampField(m, "last_run_at_unix_ms"),
		})
	}
	return out
}

// DecodeNotes decodes a persisted note list.
func DecodeNotes(raw []byte) []Note {
	var out []Note
	for _, m := range decodeObjectList(raw) {
		id := stringField(m, "id")
		if strings.TrimSpace(id) == "" {
			continue
		}
		out = append(out, Note{
			ID:        id,
			ThreadID:  stringField(m, "thread_id"),
			Text:      stringField(m, "text"),
			CreatedAt: timestampField(m, "created_at_unix_ms"),
		})
	}
	return out
}

// DecodeRecentQueries decodes the persisted recent-search list: a JSON
// array of strings. Blank and non-string entries are dropped and
// duplicates removed, preserving first-seen order.
func DecodeRecentQueries(raw []byte) []string {
	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// decodeObjectList parses raw JSON into a list of objects, dropping
// anything that is not an object. Any parse failure yields nil.
func decodeObjectList(raw []byte) []map[string]any {
	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	var out []map[string]any
	for _, v := range list {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// stringField returns the string value at key, or "" if the field is
// missing or not a string.
func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// nameField returns a display name, substituting fallback when the
// field is present but not a string, or when a non-empty fallback is
// given and the name is missing or blank.
func nameField(m map[string]any, key, fallback string) string {
	v, present := m[key]
	if !present {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	if fallback != "" && strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// boolField returns the bool value at key; anything else is false.
func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// timestampField returns a non-negative unix-ms value, or 0 (the epoch
// start) when the field is missing, not a number, or negative.
func timestampField(m map[string]any, key string) int64 {
	f, ok := m[key].(float64)
	if !ok || f < 0 || f != f { // reject NaN
		return 0
	}
	return int64(f)
}

// enumField returns the string at key if it is one of allowed,
// else fallback. Matching is case-insensitive.
func enumField(m map[string]any, key, fallback string, allowed ...string) string {
	s, ok := m[key].(string)
	if !ok {
		return fallback
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if s == a {
			return a
		}
	}
	return fallback
}

// stringListField returns the string entries of a list field, dropping
// non-string entries. A missing or mistyped field yields nil.
func stringListField(m map[string]any, key string) []string {
	list, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range list {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// citationsField decodes a citation list, keeping only object entries
// and coercing their fields to strings.
func citationsField(m map[string]any, key string) []Citation {
	list, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var out []Citation
	for _, v := range list {
		cm, ok := v.(map[string]any)
		if !ok {
			continue
		}
		c := Citation{
			Title: stringField(cm, "title"),
			URL:   stringField(cm, "url"),
		}
		if c.Title == "" && c.URL == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}
