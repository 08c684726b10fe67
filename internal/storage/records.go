package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/runger/trove/internal/model"
	"github.com/runger/trove/internal/search"
	"github.com/runger/trove/internal/selection"
)

// Fixed storage keys, one blob per entity kind. The version suffix
// exists so a future format change can migrate key by key.
const (
	KeyThreads       = "threads.v1"
	KeySpaces        = "spaces.v1"
	KeyCollections   = "collections.v1"
	KeyFiles         = "files.v1"
	KeyTasks         = "tasks.v1"
	KeyNotes         = "notes.v1"
	KeyRecentQueries = "recent-queries.v1"
	KeyUndo          = "undo.v1"
)

// MaxRecentQueries bounds the persisted recent-search list.
const MaxRecentQueries = 25

// Store is the persistence boundary the CLI and picker consume.
type Store interface {
	GetBlob(ctx context.Context, key string) ([]byte, error)
	PutBlob(ctx context.Context, key string, raw []byte) error
	DeleteBlob(ctx context.Context, key string) error
	Close() error
}

// loadBlob fetches a key, mapping a missing blob onto nil bytes so the
// decoders can treat "never saved" and "empty list" the same way.
func loadBlob(ctx context.Context, s Store, key string) ([]byte, error) {
	raw, err := s.GetBlob(ctx, key)
	if errors.Is(err, ErrBlobNotFound) {
		return nil, nil
	}
	return raw, err
}

func saveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.PutBlob(ctx, key, raw)
}

// LoadThreads loads and sanitizes the thread list. Corrupt blobs
// degrade to an empty list, never an error.
func LoadThreads(ctx context.Context, s Store) ([]model.Thread, error) {
	raw, err := loadBlob(ctx, s, KeyThreads)
	if err != nil {
		return nil, err
	}
	return model.DecodeThreads(raw), nil
}

// SaveThreads replaces the persisted thread list.
func SaveThreads(ctx context.Context, s Store, threads []model.Thread) error {
	return saveJSON(ctx, s, KeyThreads, threads)
}

// LoadSpaces loads and sanitizes the space list.
func LoadSpaces(ctx context.Context, s Store) ([]model.Space, error) {
	raw, err := loadBlob(ctx, s, KeySpaces)
	if err != nil {
		return nil, err
	}
	return model.DecodeSpaces(raw), nil
}

// SaveSpaces replaces the persisted space list.
func SaveSpaces(ctx context.Context, s Store, spaces []model.Space) error {
	return saveJSON(ctx, s, KeySpaces, spaces)
}

// LoadCollections loads and sanitizes the collection list.
func LoadCollections(ctx context.Context, s Store) ([]model.Collection, error) {
	raw, err := loadBlob(ctx, s, KeyCollections)
	if err != nil {
		return nil, err
	}
	return model.DecodeCollections(raw), nil
}

// SaveCollections replaces the persisted collection list.
func SaveCollections(ctx context.Context, s Store, collections []model.Collection) error {
	return saveJSON(ctx, s, KeyCollections, collections)
}

// LoadFiles loads and sanitizes the file-upload list.
func LoadFiles(ctx context.Context, s Store) ([]model.FileUpload, error) {
	raw, err := loadBlob(ctx, s, KeyFiles)
	if err != nil {
		return nil, err
	}
	return model.DecodeFiles(raw), nil
}

// SaveFiles replaces the persisted file-upload list.
func SaveFiles(ctx context.Context, s Store, files []model.FileUpload) error {
	return saveJSON(ctx, s, KeyFiles, files)
}

// LoadTasks loads and sanitizes the scheduled-task list.
func LoadTasks(ctx context.Context, s Store) ([]model.Task, error) {
	raw, err := loadBlob(ctx, s, KeyTasks)
	if err != nil {
		return nil, err
	}
	return model.DecodeTasks(raw), nil
}

// SaveTasks replaces the persisted scheduled-task list.
func SaveTasks(ctx context.Context, s Store, tasks []model.Task) error {
	return saveJSON(ctx, s, KeyTasks, tasks)
}

// LoadNotes loads and sanitizes the note list.
func LoadNotes(ctx context.Context, s Store) ([]model.Note, error) {
	raw, err := loadBlob(ctx, s, KeyNotes)
	if err != nil {
		return nil, err
	}
	return model.DecodeNotes(raw), nil
}

// SaveNotes replaces the persisted note list.
func SaveNotes(ctx context.Context, s Store, notes []model.Note) error {
	return saveJSON(ctx, s, KeyNotes, notes)
}

// LoadCorpus loads every searchable entity kind in one call.
func LoadCorpus(ctx context.Context, s Store) (search.Corpus, error) {
	var c search.Corpus
	var err error
	if c.Threads, err = LoadThreads(ctx, s); err != nil {
		return search.Corpus{}, err
	}
	if c.Spaces, err = LoadSpaces(ctx, s); err != nil {
		return search.Corpus{}, err
	}
	if c.Collections, err = LoadCollections(ctx, s); err != nil {
		return search.Corpus{}, err
	}
	if c.Files, err = LoadFiles(ctx, s); err != nil {
		return search.Corpus{}, err
	}
	if c.Tasks, err = LoadTasks(ctx, s); err != nil {
		return search.Corpus{}, err
	}
	return c, nil
}

// LoadRecentQueries loads the sanitized recent-search list.
func LoadRecentQueries(ctx context.Context, s Store) ([]string, error) {
	raw, err := loadBlob(ctx, s, KeyRecentQueries)
	if err != nil {
		return nil, err
	}
	return model.DecodeRecentQueries(raw), nil
}

// RecordRecentQuery moves q to the front of the recent-search list,
// dropping duplicates and trimming to MaxRecentQueries. Blank queries
// are ignored.
func RecordRecentQuery(ctx context.Context, s Store, q string) error {
	if q == "" {
		return nil
	}
	recent, err := LoadRecentQueries(ctx, s)
	if err != nil {
		return err
	}
	next := make([]string, 0, len(recent)+1)
	next = append(next, q)
	for _, r := range recent {
		if r != q {
			next = append(next, r)
		}
	}
	if len(next) > MaxRecentQueries {
		next = next[:MaxRecentQueries]
	}
	return saveJSON(ctx, s, KeyRecentQueries, next)
}

// LoadUndoAnchors loads the pending thread-deletion anchors, if any.
// A corrupt blob degrades to no pending undo.
func LoadUndoAnchors(ctx context.Context, s Store) ([]selection.DeletedAnchor[model.Thread], error) {
	raw, err := loadBlob(ctx, s, KeyUndo)
	if err != nil || raw == nil {
		return nil, err
	}
	var anchors []selection.DeletedAnchor[model.Thread]
	if err := json.Unmarshal(raw, &anchors); err != nil {
		return nil, nil
	}
	// An anchor without a stable item id can never be restored.
	kept := anchors[:0]
	for _, a := range anchors {
		if a.Item.ID != "" {
			kept = append(kept, a)
		}
	}
	return kept, nil
}

// SaveUndoAnchors persists the anchors captured by a bulk delete,
// replacing any previous batch.
func SaveUndoAnchors(ctx context.Context, s Store, anchors []selection.DeletedAnchor[model.Thread]) error {
	return saveJSON(ctx, s, KeyUndo, anchors)
}

// ClearUndoAnchors discards the pending undo batch.
func ClearUndoAnchors(ctx context.Context, s Store) error {
	return s.DeleteBlob(ctx, KeyUndo)
}
