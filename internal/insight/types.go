// Package insight talks to hosted content-analysis models. A Provider turns
// a video payload or pasted text into a structured markdown report, and can
// expand a report into a long-form article. Providers run one blocking
// request per call with no retries and no partial results: any provider or
// transport failure surfaces as a single opaque GenerationError and the
// caller decides whether to try again.
package insight

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// MaxVideoBytes caps inline video payloads. The request carries the file
// base64-inline, and the API rejects larger requests anyway; failing before
// any bytes move gives a clean validation error instead.
const MaxVideoBytes = 20 << 20

// Provider is the content-analysis boundary.
type Provider interface {
	Name() string
	AnalyzeVideo(ctx context.Context, req VideoRequest) (*Result, error)
	AnalyzeText(ctx context.Context, req TextRequest) (*Result, error)
	GenerateArticle(ctx context.Context, req ArticleRequest) (*Result, error)
}

// VideoRequest carries an opaque video payload plus optional free-text
// instructions from the user.
type VideoRequest struct {
	Path         string
	MIMEType     string
	Data         []byte
	Instructions string
}

// TextRequest carries pasted text. The analysis always runs with the
// provider's web-search augmentation enabled so the report can cite sources.
type TextRequest struct {
	Text         string
	Instructions string
}

// ArticleRequest expands a prior report. Thinking requests the provider's
// extended-reasoning mode: deeper output at higher latency.
type ArticleRequest struct {
	Report   string
	Thinking bool
}

// Source is one grounding citation returned by a search-augmented request.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Usage reports token consumption for a single generation.
type Usage struct {
	InputTokens  int32 `json:"input_tokens"`
	OutputTokens int32 `json:"output_tokens"`
	TotalTokens  int32 `json:"total_tokens"`
}

// Result is a completed generation.
type Result struct {
	Markdown string
	Sources  []Source
	Provider string
	Model    string
	Usage    Usage
	Duration time.Duration
}

// Validation errors, surfaced before any request is attempted.
var (
	ErrNoInput  = errors.New("no video file or text provided")
	ErrNotVideo = errors.New("selected file is not a video")
	ErrTooLarge = fmt.Errorf("video file exceeds the %d MiB upload limit", MaxVideoBytes>>20)
)

// ErrVideoUnsupported marks backends that cannot take video payloads. It
// reaches callers wrapped in a GenerationError.
var ErrVideoUnsupported = errors.New("this provider does not support video analysis; use the gemini provider")

// GenerationError is the single failure condition for provider-side errors.
// Op distinguishes report from article generation for user-facing messages;
// the wrapped error is diagnostic detail for logs only.
type GenerationError struct {
	Op  string // "report" or "article"
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UserMessage is the generic text shown to users, with the op context but
// none of the provider detail.
func (e *GenerationError) UserMessage() string {
	return fmt.Sprintf("%s generation failed, please try again", e.Op)
}

func failGeneration(op string, err error) error {
	return &GenerationError{Op: op, Err: err}
}

// CheckVideoSize rejects payloads that would exceed the inline request cap.
func CheckVideoSize(n int64) error {
	if n > MaxVideoBytes {
		return ErrTooLarge
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
