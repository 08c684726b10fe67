package search

import (
	"github.com/runger/trove/internal/model"
	"github.com/runger/trove/internal/query"
)

// Field weights used across entity kinds: titles outrank tags, tags
// outrank body text.
const (
	weightTitle = 3.0
	weightTag   = 2.0
	weightBody  = 1.0
	weightCite  = 0.5
)

// Corpus is the caller-held record set a unified search runs over.
// The engine never mutates it.
type Corpus struct {
	Threads     []model.Thread
	Spaces      []model.Space
	Collections []model.Collection
	Files       []model.FileUpload
	Tasks       []model.Task
}

// UnifiedResult is one ranked hit from any entity kind, shaped for
// display: a stable id, a title line, a secondary snippet, and the
// match badges (threads only).
type UnifiedResult struct {
	Kind      model.EntityKind `json:"kind"`
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Snippet   string           `json:"snippet,omitempty"`
	Timestamp int64            `json:"timestamp_unix_ms"`
	Score     float64          `json:"score"`
	Badges    []MatchBadge     `json:"badges,omitempty"`
}

// UnifiedSearch runs the full pipeline over every entity kind:
// parse, filter, score, sort, top-K. A type: operator scopes the
// search to one kind through the per-kind predicates. limit <= 0
// means unlimited.
func UnifiedSearch(c Corpus, raw string, window TimelineWindow, sortBy SortMode, limit int, nowMs int64) []UnifiedResult {
	parsed := query.ParseUnifiedSearchQuery(raw)

	var results []UnifiedResult
	for _, t := range c.Threads {
		if ThreadMatches(t, parsed, window, nowMs) {
			results = append(results, threadResult(t, parsed.Query))
		}
	}
	for _, s := range c.Spaces {
		if SpaceMatches(s, parsed, window, nowMs) {
			results = append(results, spaceResult(s, parsed.Query))
		}
	}
	for _, col := range c.Collections {
		if CollectionMatches(col, parsed, window, nowMs) {
			results = append(results, collectionResult(col, parsed.Query))
		}
	}
	for _, f := range c.Files {
		if FileMatches(f, parsed, window, nowMs) {
			results = append(results, fileResult(f, parsed.Query))
		}
	}
	for _, t := range c.Tasks {
		if TaskMatches(t, parsed, window, nowMs) {
			results = append(results, taskResult(t, parsed.Query))
		}
	}

	timestampOf := func(r UnifiedResult) int64 { return r.Timestamp }
	scoreOf := func(r UnifiedResult) float64 { return r.Score }
	if limit <= 0 {
		return SortSearchResults(results, sortBy, parsed.Query, timestampOf, scoreOf)
	}
	return TopKSearchResults(results, sortBy, parsed.Query, limit, timestampOf, scoreOf)
}

// ThreadWeightedFields builds the scoring inputs for a thread.
func ThreadWeightedFields(t model.Thread) []WeightedField {
	fields := []WeightedField{
		{Text: t.Title, Weight: weightTitle},
		{Text: t.Question, Weight: weightBody},
		{Text: t.Answer, Weight: weightBody},
		{Text: t.SpaceName, Weight: weightBody},
		{Text: t.Note, Weight: weightBody},
	}
	for _, tag := range t.Tags {
		fields = append(fields, WeightedField{Text: tag, Weight: weightTag})
	}
	for _, c := range t.Citations {
		fields = append(fields, WeightedField{Text: c.Title, Weight: weightCite})
	}
	return fields
}

// SpaceWeightedFields builds the scoring inputs for a space.
func SpaceWeightedFields(s model.Space) []WeightedField {
	fields := []WeightedField{
		{Text: s.Name, Weight: weightTitle},
		{Text: s.Description, Weight: weightBody},
	}
	for _, tag := range s.Tags {
		fields = append(fields, WeightedField{Text: tag, Weight: weightTag})
	}
	return fields
}

// CollectionWeightedFields builds the scoring inputs for a collection.
func CollectionWeightedFields(c model.Collection) []WeightedField {
	return []WeightedField{
		{Text: c.Name, Weight: weightTitle},
		{Text: c.Description, Weight: weightBody},
	}
}

// FileWeightedFields builds the scoring inputs for a file upload.
func FileWeightedFields(f model.FileUpload) []WeightedField {
	return []WeightedField{
		{Text: f.Name, Weight: weightTitle},
		{Text: f.Excerpt, Weight: weightBody},
	}
}

// TaskWeightedFields builds the scoring inputs for a task.
func TaskWeightedFields(t model.Task) []WeightedField {
	return []WeightedField{
		{Text: t.Title, Weight: weightTitle},
		{Text: t.Prompt, Weight: weightBody},
		{Text: t.SpaceName, Weight: weightBody},
	}
}

func threadResult(t model.Thread, q query.NormalizedQuery) UnifiedResult {
	title := t.Title
	if title == "" {
		title = t.Question
	}
	citations := make([]string, 0, len(t.Citations))
	for _, c := range t.Citations {
		citations = append(citations, c.Title)
	}
	return UnifiedResult{
		Kind:      model.KindThread,
		ID:        t.ID,
		Title:     title,
		Snippet:   t.Answer,
		Timestamp: t.UpdatedAt,
		Score:     ComputeRelevanceScore(ThreadWeightedFields(t), q),
		Badges: ComputeThreadMatchBadges(ThreadMatchInputs{
			Title:     t.Title,
			Question:  t.Question,
			Answer:    t.Answer,
			Tags:      t.Tags,
			SpaceName: t.SpaceName,
			Note:      t.Note,
			Citations: citations,
		}, q),
	}
}

func spaceResult(s model.Space, q query.NormalizedQuery) UnifiedResult {
	return UnifiedResult{
		Kind:      model.KindSpace,
		ID:        s.ID,
		Title:     s.Name,
		Snippet:   s.Description,
		Timestamp: s.CreatedAt,
		Score:     ComputeRelevanceScore(SpaceWeightedFields(s), q),
	}
}

func collectionResult(c model.Collection, q query.NormalizedQuery) UnifiedResult {
	return UnifiedResult{
		Kind:      model.KindCollection,
		ID:        c.ID,
		Title:     c.Name,
		Snippet:   c.Description,
		Timestamp: c.CreatedAt,
		Score:     ComputeRelevanceScore(CollectionWeightedFields(c), q),
	}
}

func fileResult(f model.FileUpload, q query.NormalizedQuery) UnifiedResult {
	return UnifiedResult{
		Kind:      model.KindFile,
		ID:        f.ID,
		Title:     f.Name,
		Snippet:   f.Excerpt,
		Timestamp: f.CreatedAt,
		Score:     ComputeRelevanceScore(FileWeightedFields(f), q),
	}
}

func taskResult(t model.Task, q query.NormalizedQuery) UnifiedResult {
	return UnifiedResult{
		Kind:      model.KindTask,
		ID:        t.ID,
		Title:     t.Title,
		Snippet:   t.Prompt,
		Timestamp: t.CreatedAt,
		Score:     ComputeRelevanceScore(TaskWeightedFields(t), q),
	}
}
