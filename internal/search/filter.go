package search

import (
	"strings"

	"github.com/runger/trove/internal/model"
	"github.com/runger/trove/internal/query"
)

// Per-entity filter predicates. A record survives when it satisfies
// the timeline window, the free-text match, and every supplied
// operator that is meaningful for its entity kind. An operator that is
// not applicable to the kind rejects the record outright instead of
// being ignored: cross-entity operator misuse yields zero results for
// the mismatched kind, so scoped and un-scoped searches degrade
// predictably.

// ThreadMatches reports whether a thread survives the parsed query and
// timeline window. Threads honor the full operator set.
func ThreadMatches(t model.Thread, p query.ParsedUnifiedSearchQuery, window TimelineWindow, nowMs int64) bool {
	ops := p.Operators
	if ops.Type != "" && ops.Type != model.KindThread {
		return false
	}
	if !ApplyTimelineWindow(t.UpdatedAt, window, nowMs) {
		return false
	}
	if !spaceScopeMatches(t.SpaceName, t.SpaceID, ops) {
		return false
	}
	for _, tag := range ops.Tags {
		if !containsFold(t.Tags, tag) {
			return false
		}
	}
	for _, tag := range ops.NotTags {
		if containsFold(t.Tags, tag) {
			return false
		}
	}
	if ops.HasNote && t.Note == "" {
		return false
	}
	if ops.NotHasNote && t.Note != "" {
		return false
	}
	if ops.HasCitation && len(t.Citations) == 0 {
		return false
	}
	if ops.NotHasCitation && len(t.Citations) > 0 {
		return false
	}
	for _, state := range ops.States {
		if !threadHasState(t, state) {
			return false
		}
	}
	for _, state := range ops.NotStates {
		if threadHasState(t, state) {
			return false
		}
	}
	return MatchesQuery(threadFacets(t), p.Query)
}

// SpaceMatches reports whether a space survives the parsed query.
// Spaces honor space/spaceid scoping and tags; the thread-only
// has:/is: operators reject every space.
func SpaceMatches(s model.Space, p query.ParsedUnifiedSearchQuery, window TimelineWindow, nowMs int64) bool {
	ops := p.Operators
	if ops.Type != "" && ops.Type != model.KindSpace {
		return false
	}
	if hasPresenceOperators(ops) || hasStateOperators(ops) {
		return false
	}
	if !ApplyTimelineWindow(s.CreatedAt, window, nowMs) {
		return false
	}
	if !spaceScopeMatches(s.Name, s.ID, ops) {
		return false
	}
	for _, tag := range ops.Tags {
		if !containsFold(s.Tags, tag) {
			return false
		}
	}
	for _, tag := range ops.NotTags {
		if containsFold(s.Tags, tag) {
			return false
		}
	}
	return MatchesQuery(spaceFacets(s), p.Query)
}

// CollectionMatches reports whether a collection survives the parsed
// query. Collections support only free text and the timeline window;
// any structured operator rejects them.
func CollectionMatches(c model.Collection, p query.ParsedUnifiedSearchQuery, window TimelineWindow, nowMs int64) bool {
	ops := p.Operators
	if ops.Type != "" && ops.Type != model.KindCollection {
		return false
	}
	if hasPresenceOperators(ops) || hasStateOperators(ops) || hasTagOperators(ops) || hasSpaceOperators(ops) {
		return false
	}
	if !ApplyTimelineWindow(c.CreatedAt, window, nowMs) {
		return false
	}
	return MatchesQuery(collectionFacets(c), p.Query)
}

// FileMatches reports whether a file survives the parsed query. Files
// support only free text and the timeline window.
func FileMatches(f model.FileUpload, p query.ParsedUnifiedSearchQuery, window TimelineWindow, nowMs int64) bool {
	ops := p.Operators
	if ops.Type != "" && ops.Type != model.KindFile {
		return false
	}
	if hasPresenceOperators(ops) || hasStateOperators(ops) || hasTagOperators(ops) || hasSpaceOperators(ops) {
		return false
	}
	if !ApplyTimelineWindow(f.CreatedAt, window, nowMs) {
		return false
	}
	return MatchesQuery(fileFacets(f), p.Query)
}

// TaskMatches reports whether a task survives the parsed query. Tasks
// honor space/spaceid scoping; tag and thread-only operators reject.
func TaskMatches(t model.Task, p query.ParsedUnifiedSearchQuery, window TimelineWindow, nowMs int64) bool {
	ops := p.Operators
	if ops.Type != "" && ops.Type != model.KindTask {
		return false
	}
	if hasPresenceOperators(ops) || hasStateOperators(ops) || hasTagOperators(ops) {
		return false
	}
	if !ApplyTimelineWindow(t.CreatedAt, window, nowMs) {
		return false
	}
	if !spaceScopeMatches(t.SpaceName, t.SpaceID, ops) {
		return false
	}
	return MatchesQuery(taskFacets(t), p.Query)
}

// FilterThreads returns the threads surviving the query, in input
// order, as a new slice.
func FilterThreads(threads []model.Thread, p query.ParsedUnifiedSearchQuery, window TimelineWindow, nowMs int64) []model.Thread {
	var out []model.Thread
	for _, t := range threads {
		if ThreadMatches(t, p, window, nowMs) {
			out = append(out, t)
		}
	}
	return out
}

// FilterSpaces returns the spaces surviving the query, in input order.
func FilterSpaces(spaces []model.Space, p query.ParsedUnifiedSearchQuery, window TimelineWindow, nowMs int64) []model.Space {
	var out []model.Space
	for _, s := range spaces {
		if SpaceMatches(s, p, window, nowMs) {
			out = append(out, s)
		}
	}
	return out
}

// FilterCollections returns the collections surviving the query.
func FilterCollections(collections []model.Collection, p query.ParsedUnifiedSearchQuery, window TimelineWindow, nowMs int64) []model.Collection {
	var out []model.Collection
	for _, c := range collections {
		if CollectionMatches(c, p, window, nowMs) {
			out = append(out, c)
		}
	}
	return out
}

// FilterFiles returns the files surviving the query.
func FilterFiles(files []model.FileUpload, p query.ParsedUnifiedSearchQuery, window TimelineWindow, nowMs int64) []model.FileUpload {
	var out []model.FileUpload
	for _, f := range files {
		if FileMatches(f, p, window, nowMs) {
			out = append(out, f)
		}
	}
	return out
}

// FilterTasks returns the tasks surviving the query.
func FilterTasks(tasks []model.Task, p query.ParsedUnifiedSearchQuery, window TimelineWindow, nowMs int64) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if TaskMatches(t, p, window, nowMs) {
			out = append(out, t)
		}
	}
	return out
}

// spaceScopeMatches applies the space:/spaceid: operators against a
// record's space name and id. When both are supplied, either match
// satisfies the scope.
func spaceScopeMatches(spaceName, spaceID string, ops query.UnifiedSearchOperators) bool {
	if ops.Space == "" && ops.SpaceID == "" {
		return true
	}
	if ops.Space != "" && strings.Contains(strings.ToLower(spaceName), strings.ToLower(ops.Space)) {
		return true
	}
	if ops.SpaceID != "" && spaceID == ops.SpaceID {
		return true
	}
	return false
}

func threadHasState(t model.Thread, state string) bool {
	switch state {
	case query.StatePinned:
		return t.Pinned
	case query.StateFavorite:
		return t.Favorite
	case query.StateArchived:
		return t.Archived
	}
	return false
}

func hasPresenceOperators(ops query.UnifiedSearchOperators) bool {
	return ops.HasNote || ops.NotHasNote || ops.HasCitation || ops.NotHasCitation
}

func hasStateOperators(ops query.UnifiedSearchOperators) bool {
	return len(ops.States) > 0 || len(ops.NotStates) > 0
}

func hasTagOperators(ops query.UnifiedSearchOperators) bool {
	return len(ops.Tags) > 0 || len(ops.NotTags) > 0
}

func hasSpaceOperators(ops query.UnifiedSearchOperators) bool {
	return ops.Space != "" || ops.SpaceID != ""
}

// containsFold reports whether list contains s, case-insensitively.
func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func threadFacets(t model.Thread) []string {
	parts := []string{t.Title, t.Question, t.Answer, t.SpaceName, t.Note}
	parts = append(parts, t.Tags...)
	for _, c := range t.Citations {
		parts = append(parts, c.Title, c.URL)
	}
	return parts
}

func spaceFacets(s model.Space) []string {
	parts := []string{s.Name, s.Description}
	return append(parts, s.Tags...)
}

func collectionFacets(c model.Collection) []string {
	return []string{c.Name, c.Description}
}

func fileFacets(f model.FileUpload) []string {
	return []string{f.Name, f.Excerpt}
}

func taskFacets(t model.Task) []string {
	return []string{t.Title, t.Prompt, t.SpaceName}
}
