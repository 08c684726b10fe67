package selection

import (
	"reflect"
	"testing"
)

type rec struct {
	ID   string
	Tag  string
	Pins int
}

func recID(r rec) string { return r.ID }

func TestApplyBulkUpdate(t *testing.T) {
	t.Parallel()

	records := []rec{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := ApplyBulkUpdate(records, []string{"a", "c"}, recID, func(r rec) rec {
		r.Pins++
		return r
	})

	if got[0].Pins != 1 || got[1].Pins != 0 || got[2].Pins != 1 {
		t.Errorf("ApplyBulkUpdate = %+v", got)
	}
	for _, r := range records {
		if r.Pins != 0 {
			t.Error("input records must not be mutated")
		}
	}
}

func TestApplyBulkUpdate_EmptySelection(t *testing.T) {
	t.Parallel()

	records := []rec{{ID: "a"}, {ID: "b"}}
	got := ApplyBulkUpdate(records, nil, recID, func(r rec) rec {
		r.Tag = "touched"
		return r
	})
	if !reflect.DeepEqual(got, records) {
		t.Errorf("got %+v, want records unchanged", got)
	}
}

func TestPruneSelectedIDs(t *testing.T) {
	t.Parallel()

	valid := map[string]bool{"a": true, "c": true}

	t.Run("no change returns same slice identity", func(t *testing.T) {
		t.Parallel()
		selected := []string{"a", "c"}
		got := PruneSelectedIDs(selected, valid)
		if &got[0] != &selected[0] || len(got) != len(selected) {
			t.Error("unchanged selection must return the original slice")
		}
	})

	t.Run("drops invalid ids preserving order", func(t *testing.T) {
		t.Parallel()
		got := PruneSelectedIDs([]string{"x", "a", "y", "c"}, valid)
		if !reflect.DeepEqual(got, []string{"a", "c"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("empty selection unchanged", func(t *testing.T) {
		t.Parallel()
		var selected []string
		if got := PruneSelectedIDs(selected, valid); len(got) != 0 {
			t.Errorf("got %v", got)
		}
	})
}

func TestToggleVisibleSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		selected []string
		visible  []string
		enabled  bool
		expected []string
	}{
		{
			name:     "enable appends unselected visible ids in order",
			selected: []string{"b"},
			visible:  []string{"a", "b", "c"},
			enabled:  true,
			expected: []string{"b", "a", "c"},
		},
		{
			name:     "enable with nothing selected",
			selected: nil,
			visible:  []string{"x", "y"},
			enabled:  true,
			expected: []string{"x", "y"},
		},
		{
			name:     "disable removes only visible ids",
			selected: []string{"a", "b", "c", "d"},
			visible:  []string{"b", "d"},
			enabled:  false,
			expected: []string{"a", "c"},
		},
		{
			name:     "disable leaves non-visible untouched",
			selected: []string{"a", "b"},
			visible:  []string{"z"},
			enabled:  false,
			expected: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ToggleVisibleSelection(tt.selected, tt.visible, tt.enabled)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResolveActiveSelectedIDs(t *testing.T) {
	t.Parallel()

	items := []rec{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	active, missing := ResolveActiveSelectedIDs([]string{"c", "x", "a", "y"}, items, recID)
	if !reflect.DeepEqual(active, []string{"c", "a"}) {
		t.Errorf("active = %v", active)
	}
	if missing != 2 {
		t.Errorf("missing = %d, want 2", missing)
	}

	active, missing = ResolveActiveSelectedIDs(nil, items, recID)
	if len(active) != 0 || missing != 0 {
		t.Errorf("empty selection: active=%v missing=%d", active, missing)
	}
}
