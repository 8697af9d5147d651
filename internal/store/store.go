// Package store persists generated reports and articles. Only generated
// output is saved: input videos and pasted text never touch disk.
package store

import (
	"context"
	"time"

	"github.com/samsaffron/vidbrief/internal/insight"
)

// Kind distinguishes the two generation types.
const (
	KindReport  = "report"
	KindArticle = "article"
)

// Generation is one saved output.
type Generation struct {
	ID           int64            `json:"id"`
	Kind         string           `json:"kind"` // "report" or "article"
	Title        string           `json:"title,omitempty"`
	Source       string           `json:"source,omitempty"` // video filename, or "text"
	Provider     string           `json:"provider"`
	Model        string           `json:"model"`
	Markdown     string           `json:"markdown"`
	Sources      []insight.Source `json:"sources,omitempty"`
	InputTokens  int              `json:"input_tokens,omitempty"`
	OutputTokens int              `json:"output_tokens,omitempty"`
	DurationMs   int64            `json:"duration_ms,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Summary is a lightweight view of a generation for listing. Excerpt is a
// single plain-text line derived from the start of the stored markdown.
type Summary struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title,omitempty"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Source    string    `json:"source,omitempty"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOptions configures generation listing.
type ListOptions struct {
	Kind   string // Filter by kind ("" = all)
	Limit  int    // Max results (0 = use default)
	Offset int    // Pagination offset
}

// Store is the interface for generation persistence.
type Store interface {
	Save(ctx context.Context, g *Generation) error
	Get(ctx context.Context, id int64) (*Generation, error)
	Latest(ctx context.Context, kind string) (*Generation, error)
	List(ctx context.Context, opts ListOptions) ([]Summary, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}

// NewStore creates a Store backed by the database at path.
// With disabled=true all writes are silently discarded.
func NewStore(path string, disabled bool) (Store, error) {
	if disabled {
		return &NoopStore{}, nil
	}
	return NewSQLiteStore(path)
}
