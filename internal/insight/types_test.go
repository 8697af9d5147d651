package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCheckVideoSize(t *testing.T) {
	if err := CheckVideoSize(MaxVideoBytes); err != nil {
		t.Errorf("exactly at the cap should pass: %v", err)
	}
	if err := CheckVideoSize(MaxVideoBytes + 1); !errors.Is(err, ErrTooLarge) {
		t.Errorf("over the cap err=%v, want ErrTooLarge", err)
	}
}

func TestGenerationError(t *testing.T) {
	inner := errors.New("status 500 from upstream")
	err := failGeneration("report", inner)

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("failGeneration did not produce a *GenerationError: %T", err)
	}
	if !errors.Is(err, inner) {
		t.Error("wrapped error lost")
	}
	if genErr.Op != "report" {
		t.Errorf("op=%q, want report", genErr.Op)
	}

	// The user-facing message carries the op but never the provider detail.
	msg := genErr.UserMessage()
	if !strings.Contains(msg, "report") {
		t.Errorf("UserMessage()=%q missing op", msg)
	}
	if strings.Contains(msg, "500") {
		t.Errorf("UserMessage()=%q leaks provider detail", msg)
	}
}

func TestVideoUnsupportedWrapped(t *testing.T) {
	p := NewOpenAIProvider("key", "", PromptOverrides{}, false)
	_, err := p.AnalyzeVideo(context.Background(), VideoRequest{Data: []byte("x"), MIMEType: "video/mp4"})
	if !errors.Is(err, ErrVideoUnsupported) {
		t.Errorf("err=%v, want ErrVideoUnsupported", err)
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Errorf("video rejection should be a GenerationError, got %T", err)
	}
}
