package search

import (
	"testing"

	"github.com/runger/trove/internal/model"
	"github.com/runger/trove/internal/query"
)

const testNowMs = int64(1_750_000_000_000)

func parse(raw string) query.ParsedUnifiedSearchQuery {
	return query.ParseUnifiedSearchQuery(raw)
}

func testThread() model.Thread {
	return model.Thread{
		ID:        "t1",
		Title:     "Q3 Roadmap",
		Question:  "what ships in q3?",
		Answer:    "the api rewrite ships first",
		Tags:      []string{"planning", "roadmap"},
		SpaceID:   "sp-1",
		SpaceName: "Deep Work",
		Note:      "revisit after offsite",
		Citations: []model.Citation{{Title: "Launch checklist", URL: "https://example.com/x"}},
		Pinned:    true,
		CreatedAt: testNowMs - 1000,
		UpdatedAt: testNowMs - 1000,
	}
}

func TestThreadMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		mutate   func(*model.Thread)
		expected bool
	}{
		{"free text hit", "roadmap", nil, true},
		{"free text miss", "kubernetes", nil, false},
		{"type scoped to threads", "type:threads roadmap", nil, true},
		{"type scoped elsewhere", "type:files roadmap", nil, false},
		{"space name substring", `space:"deep" roadmap`, nil, true},
		{"space name miss", "space:shallow", nil, false},
		{"space id exact", "spaceid:sp-1", nil, true},
		{"space id miss", "spaceid:sp-2", nil, false},
		{"space or spaceid either satisfies", "space:nomatch spaceid:sp-1", nil, true},
		{"tag membership case-insensitive", "tag:Planning", nil, true},
		{"tag missing", "tag:urgent", nil, false},
		{"negated tag excludes", "-tag:planning", nil, false},
		{"negated tag passes when absent", "-tag:urgent roadmap", nil, true},
		{"has note", "has:note", nil, true},
		{"has note fails without note", "has:note", func(th *model.Thread) { th.Note = "" }, false},
		{"not has note", "-has:note", nil, false},
		{"has citation", "has:citation", nil, true},
		{"not has citation fails with citations", "-has:sources", nil, false},
		{"is pinned", "is:pinned", nil, true},
		{"is favorite fails", "is:favorite", nil, false},
		{"not archived passes", "-is:archived", nil, true},
		{"contradictory has forms yield nothing", "has:note -has:note", nil, false},
		{"verbatim phrase present", "verbatim:true api rewrite", nil, true},
		{"verbatim phrase split across facets fails", "verbatim:true roadmap offsite", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			th := testThread()
			if tt.mutate != nil {
				tt.mutate(&th)
			}
			got := ThreadMatches(th, parse(tt.raw), WindowAll, testNowMs)
			if got != tt.expected {
				t.Errorf("ThreadMatches(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestThreadMatches_TimelineWindow(t *testing.T) {
	t.Parallel()

	th := testThread()
	th.UpdatedAt = testNowMs - 3*dayMs

	if ThreadMatches(th, parse("roadmap"), Window24h, testNowMs) {
		t.Error("3-day-old thread must fail the 24h window")
	}
	if !ThreadMatches(th, parse("roadmap"), Window7d, testNowMs) {
		t.Error("3-day-old thread must pass the 7d window")
	}
}

func TestSpaceMatches_StrictOperatorRejection(t *testing.T) {
	t.Parallel()

	sp := model.Space{
		ID:        "sp-1",
		Name:      "Deep Work",
		Tags:      []string{"focus"},
		CreatedAt: testNowMs,
	}

	// Thread-only operators reject every space, regardless of content.
	rejecting := []string{
		"has:note",
		"-has:note",
		"has:citation",
		"is:pinned",
		"-is:archived",
	}
	for _, raw := range rejecting {
		if SpaceMatches(sp, parse(raw), WindowAll, testNowMs) {
			t.Errorf("space must be rejected for query %q", raw)
		}
	}

	// Supported operators still work.
	if !SpaceMatches(sp, parse("space:deep"), WindowAll, testNowMs) {
		t.Error("space: operator should match the space name")
	}
	if !SpaceMatches(sp, parse("spaceid:sp-1"), WindowAll, testNowMs) {
		t.Error("spaceid: operator should match the space id")
	}
	if !SpaceMatches(sp, parse("tag:focus"), WindowAll, testNowMs) {
		t.Error("tag: operator should match space-level tags")
	}
	if SpaceMatches(sp, parse("tag:missing"), WindowAll, testNowMs) {
		t.Error("tag: operator must filter by space-level tags")
	}
}

func TestCollectionMatches_OnlyFreeTextAndTimeline(t *testing.T) {
	t.Parallel()

	c := model.Collection{ID: "c1", Name: "Launch prep", Description: "q3 launch readings", CreatedAt: testNowMs}

	if !CollectionMatches(c, parse("launch"), WindowAll, testNowMs) {
		t.Error("free text should match collection name")
	}
	for _, raw := range []string{"tag:x", "-tag:x", "space:deep", "spaceid:sp-1", "has:note", "is:pinned"} {
		if CollectionMatches(c, parse(raw+" launch"), WindowAll, testNowMs) {
			t.Errorf("collection must be rejected for query %q", raw)
		}
	}
}

func TestFileMatches_OnlyFreeTextAndTimeline(t *testing.T) {
	t.Parallel()

	f := model.FileUpload{ID: "f1", Name: "budget.pdf", Excerpt: "q3 spend forecast", CreatedAt: testNowMs}

	if !FileMatches(f, parse("budget"), WindowAll, testNowMs) {
		t.Error("free text should match file name")
	}
	if !FileMatches(f, parse("forecast"), WindowAll, testNowMs) {
		t.Error("free text should match file excerpt")
	}
	for _, raw := range []string{"tag:x", "spaceid:sp-1", "space:deep", "has:note", "is:pinned"} {
		if FileMatches(f, parse(raw+" budget"), WindowAll, testNowMs) {
			t.Errorf("file must be rejected for query %q", raw)
		}
	}
}

func TestTaskMatches(t *testing.T) {
	t.Parallel()

	task := model.Task{
		ID:        "task1",
		Title:     "Weekly digest",
		Prompt:    "summarize the week's threads",
		SpaceID:   "sp-1",
		SpaceName: "Deep Work",
		CreatedAt: testNowMs,
	}

	if !TaskMatches(task, parse("digest"), WindowAll, testNowMs) {
		t.Error("free text should match task title")
	}
	if !TaskMatches(task, parse("space:deep digest"), WindowAll, testNowMs) {
		t.Error("space: operator applies to tasks")
	}
	if !TaskMatches(task, parse("spaceid:sp-1"), WindowAll, testNowMs) {
		t.Error("spaceid: operator applies to tasks")
	}
	if TaskMatches(task, parse("space:other"), WindowAll, testNowMs) {
		t.Error("space: operator must filter tasks")
	}
	for _, raw := range []string{"tag:x", "has:note", "is:pinned", "-is:archived"} {
		if TaskMatches(task, parse(raw+" digest"), WindowAll, testNowMs) {
			t.Errorf("task must be rejected for query %q", raw)
		}
	}
}

func TestFilterThreads_PreservesOrderAndInput(t *testing.T) {
	t.Parallel()

	a, b, c := testThread(), testThread(), testThread()
	a.ID, a.Title = "a", "roadmap one"
	b.ID, b.Title = "b", "unrelated"
	c.ID, c.Title = "c", "roadmap two"
	in := []model.Thread{a, b, c}

	got := FilterThreads(in, parse("roadmap"), WindowAll, testNowMs)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("FilterThreads = %+v", got)
	}
	if len(in) != 3 || in[1].ID != "b" {
		t.Error("input slice must not be mutated")
	}
}
