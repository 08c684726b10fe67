package selection

// DeletedAnchor remembers where a record sat when it was deleted: the
// ids of its immediate neighbors in the list at that moment. An empty
// id means the record was at that end of the list. Anchors are
// captured on bulk delete, consumed once on undo, then discarded.
type DeletedAnchor[T any] struct {
	Item     T      `json:"item"`
	BeforeID string `json:"before_id,omitempty"`
	AfterID  string `json:"after_id,omitempty"`
}

// CaptureDeletedAnchors records, for each item whose id is in
// deletedIDs, its neighbors in items at this moment, in list order.
// Neighbors may themselves be about to be deleted; that is what lets
// RestoreDeletedAnchors rebuild adjacent runs one anchor at a time.
func CaptureDeletedAnchors[T any](items []T, deletedIDs []string, idOf func(T) string) []DeletedAnchor[T] {
	deleted := idSet(deletedIDs)
	var anchors []DeletedAnchor[T]
	for i, item := range items {
		if !deleted[idOf(item)] {
			continue
		}
		a := DeletedAnchor[T]{Item: item}
		if i > 0 {
			a.BeforeID = idOf(items[i-1])
		}
		if i < len(items)-1 {
			a.AfterID = idOf(items[i+1])
		}
		anchors = append(anchors, a)
	}
	return anchors
}

// RestoreDeletedAnchors reinserts deleted items into items at their
// original relative positions and returns the result as a new slice.
// Anchors are applied in capture order, so restoring the first of an
// adjacent run recreates the anchor point for the next. Resolution
// order per anchor: immediately after BeforeID, else immediately
// before AfterID; failing both, an item that was at the head of the
// list goes back to the head and anything else is appended. Items
// already present are skipped. The list may have been edited between
// capture and restore; restoring a full batch with no intervening
// edits recovers the exact original order.
func RestoreDeletedAnchors[T any](items []T, deleted []DeletedAnchor[T], idOf func(T) string) []T {
	out := append([]T(nil), items...)
	for _, anchor := range deleted {
		id := idOf(anchor.Item)
		if indexOfID(out, id, idOf) >= 0 {
			continue
		}
		switch {
		case anchor.BeforeID != "" && indexOfID(out, anchor.BeforeID, idOf) >= 0:
			idx := indexOfID(out, anchor.BeforeID, idOf)
			out = insertAt(out, idx+1, anchor.Item)
		case anchor.AfterID != "" && indexOfID(out, anchor.AfterID, idOf) >= 0:
			idx := indexOfID(out, anchor.AfterID, idOf)
			out = insertAt(out, idx, anchor.Item)
		case anchor.BeforeID == "":
			// Head item whose successor is gone too (an adjacent run
			// deleted from the front). Back to the head, so the rest
			// of the run can anchor onto it.
			out = insertAt(out, 0, anchor.Item)
		default:
			out = append(out, anchor.Item)
		}
	}
	return out
}

func indexOfID[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func insertAt[T any](items []T, idx int, item T) []T {
	items = append(items, item) // grow by one
	copy(items[idx+1:], items[idx:])
	items[idx] = item
	return items
}
