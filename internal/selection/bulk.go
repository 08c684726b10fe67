// Package selection implements bulk-edit helpers over record slices:
// applying an update to a selected subset, reconciling a selection
// against the current record set, and the deleted-anchor undo
// mechanism. All functions treat their inputs as immutable and return
// fresh slices, so callers can rely on identity change detection.
package selection

// ApplyBulkUpdate returns a new slice where update has been applied to
// every record whose id is in selectedIDs; all other records pass
// through unchanged. The input slice is never mutated.
func ApplyBulkUpdate[T any](records []T, selectedIDs []string, idOf func(T) string, update func(T) T) []T {
	selected := idSet(selectedIDs)
	out := make([]T, len(records))
	for i, r := range records {
		if selected[idOf(r)] {
			out[i] = update(r)
		} else {
			out[i] = r
		}
	}
	return out
}

// PruneSelectedIDs drops selected ids that are no longer valid,
// preserving order. When nothing needs dropping the original slice is
// returned unchanged, so callers memoizing on slice identity see no
// spurious change.
func PruneSelectedIDs(selectedIDs []string, validIDs map[string]bool) []string {
	needsPrune := false
	for _, id := range selectedIDs {
		if !validIDs[id] {
			needsPrune = true
			break
		}
	}
	if !needsPrune {
		return selectedIDs
	}

	out := make([]string, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if validIDs[id] {
			out = append(out, id)
		}
	}
	return out
}

// ToggleVisibleSelection selects or deselects the currently visible
// ids. Enabling appends visible-but-unselected ids to the end of the
// selection; disabling removes only the visible ids, leaving the rest
// of the selection untouched. Existing order is preserved either way.
func ToggleVisibleSelection(selected, visible []string, enabled bool) []string {
	if enabled {
		already := idSet(selected)
		out := append([]string(nil), selected...)
		for _, id := range visible {
			if !already[id] {
				out = append(out, id)
				already[id] = true
			}
		}
		return out
	}

	visibleSet := idSet(visible)
	out := make([]string, 0, len(selected))
	for _, id := range selected {
		if !visibleSet[id] {
			out = append(out, id)
		}
	}
	return out
}

// ResolveActiveSelectedIDs restricts a selection to ids present in
// items, preserving selection order, and reports how many selected ids
// are missing from the current record set.
func ResolveActiveSelectedIDs[T any](selectedIDs []string, items []T, idOf func(T) string) (activeIDs []string, missingCount int) {
	present := make(map[string]bool, len(items))
	for _, item := range items {
		present[idOf(item)] = true
	}

	activeIDs = make([]string, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if present[id] {
			activeIDs = append(activeIDs, id)
		} else {
			missingCount++
		}
	}
	return activeIDs, missingCount
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
