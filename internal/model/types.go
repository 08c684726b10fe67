// Package model defines the record types held in the local workspace
// corpus and the defensive decoders that load them from persisted JSON.
package model

// EntityKind identifies one of the five searchable record types.
type EntityKind string

const (
	KindThread     EntityKind = "thread"
	KindSpace      EntityKind = "space"
	KindCollection EntityKind = "collection"
	KindFile       EntityKind = "file"
	KindTask       EntityKind = "task"
)

// Thread modes. Unknown persisted values decode to ModeQuick.
const (
	ModeQuick    = "quick"
	ModeResearch = "research"
)

// Thread source settings. Unknown persisted values decode to SourcesNone.
const (
	SourcesNone = "none"
	SourcesWeb  = "web"
	SourcesAll  = "all"
)

// Citation is a reference attached to a thread answer.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Thread is a single conversational exchange: a question, its answer,
// and the metadata the user has attached to it.
type Thread struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	Tags      []string   `json:"tags,omitempty"`
	SpaceID   string     `json:"space_id,omitempty"`
	SpaceName string     `json:"space_name,omitempty"`
	Note      string     `json:"note,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Mode      string     `json:"mode"`
	Sources   string     `json:"sources"`
	Pinned    bool       `json:"pinned,omitempty"`
	Favorite  bool       `json:"favorite,omitempty"`
	Archived  bool       `json:"archived,omitempty"`
	CreatedAt int64      `json:"created_at_unix_ms"`
	UpdatedAt int64      `json:"updated_at_unix_ms"`
}

// Space is a named workspace that threads and tasks can belong to.
type Space struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   int64    `json:"created_at_unix_ms"`
}

// Collection is a user-curated list of thread ids.
type Collection struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ThreadIDs   []string `json:"thread_ids,omitempty"`
	CreatedAt   int64    `json:"created_at_unix_ms"`
}

// FileUpload is a user-uploaded file; Excerpt holds extracted text
// used for matching, not the file contents themselves.
type FileUpload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MimeType  string `json:"mime_type,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
	CreatedAt int64  `json:"created_at_unix_ms"`
}

// Task is a scheduled prompt that runs on a cadence.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Prompt    string `json:"prompt,omitempty"`
	SpaceID   string `json:"space_id,omitempty"`
	SpaceName string `json:"space_name,omitempty"`
	Cadence   string `json:"cadence,omitempty"`
	Enabled   bool   `json:"enabled"`
	CreatedAt int64  `json:"created_at_unix_ms"`
	LastRunAt int64  `json:"last_run_at_unix_ms,omitempty"`
}

// Note is a standalone annotation attached to a thread.
type Note struct {
	ID        string `json:"id"`
	ThreadID  string `json:"thread_id,omitempty"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at_unix_ms"`
}
