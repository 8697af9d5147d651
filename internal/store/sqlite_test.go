package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samsaffron/vidbrief/internal/insight"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	g := &Generation{
		Kind:     KindReport,
		Title:    "Conference Talk",
		Source:   "talk.mp4",
		Provider: "Gemini (gemini-3-flash-preview)",
		Model:    "gemini-3-flash-preview",
		Markdown: "# Conference Talk\n\nBody.",
		Sources: []insight.Source{
			{Title: "Docs", URI: "https://docs.example"},
		},
		InputTokens:  1200,
		OutputTokens: 640,
		DurationMs:   5300,
	}
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("failed to save generation: %v", err)
	}
	if g.ID == 0 {
		t.Fatal("Save should fill in the ID")
	}

	loaded, err := s.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("failed to load generation: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected generation to exist")
	}
	if loaded.Kind != KindReport {
		t.Errorf("kind=%q, want report", loaded.Kind)
	}
	if loaded.Title != "Conference Talk" {
		t.Errorf("title=%q", loaded.Title)
	}
	if loaded.Markdown != g.Markdown {
		t.Errorf("markdown did not round-trip: %q", loaded.Markdown)
	}
	if len(loaded.Sources) != 1 || loaded.Sources[0].URI != "https://docs.example" {
		t.Errorf("sources did not round-trip: %+v", loaded.Sources)
	}
	if loaded.InputTokens != 1200 || loaded.OutputTokens != 640 {
		t.Errorf("tokens did not round-trip: %d/%d", loaded.InputTokens, loaded.OutputTokens)
	}
	if loaded.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}

	missing, err := s.Get(ctx, 9999)
	if err != nil {
		t.Fatalf("Get on missing id: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing generation, got %+v", missing)
	}
}

func TestSQLiteStoreLatestAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, g := range []*Generation{
		{Kind: KindReport, Title: "first", Provider: "p", Model: "m", Markdown: "a"},
		{Kind: KindArticle, Title: "second", Provider: "p", Model: "m", Markdown: "b"},
		{Kind: KindReport, Title: "third", Provider: "p", Model: "m", Markdown: "c"},
	} {
		if err := s.Save(ctx, g); err != nil {
			t.Fatalf("save %q: %v", g.Title, err)
		}
	}

	latest, err := s.Latest(ctx, "")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.Title != "third" {
		t.Errorf("Latest()=%+v, want third", latest)
	}

	latest, err = s.Latest(ctx, KindArticle)
	if err != nil {
		t.Fatalf("Latest(article): %v", err)
	}
	if latest == nil || latest.Title != "second" {
		t.Errorf("Latest(article)=%+v, want second", latest)
	}

	all, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List returned %d entries, want 3", len(all))
	}
	if all[0].Title != "third" || all[2].Title != "first" {
		t.Errorf("List not newest-first: %v", all)
	}
	if all[0].Excerpt != "c" {
		t.Errorf("Excerpt = %q, want %q", all[0].Excerpt, "c")
	}

	reports, err := s.List(ctx, ListOptions{Kind: KindReport})
	if err != nil {
		t.Fatalf("List(report): %v", err)
	}
	if len(reports) != 2 {
		t.Errorf("kind filter returned %d entries, want 2", len(reports))
	}

	limited, err := s.List(ctx, ListOptions{Limit: 1})
	if err != nil {
		t.Fatalf("List(limit=1): %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit returned %d entries, want 1", len(limited))
	}
}

func TestSQLiteStoreDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	g := &Generation{Kind: KindReport, Provider: "p", Model: "m", Markdown: "x"}
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.Delete(ctx, g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	loaded, err := s.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if loaded != nil {
		t.Error("generation survived delete")
	}

	if err := s.Delete(ctx, g.ID); err == nil {
		t.Error("deleting a missing generation should error")
	}
}

func TestNoopStore(t *testing.T) {
	s, err := NewStore("", true)
	if err != nil {
		t.Fatalf("NewStore(disabled): %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	g := &Generation{Kind: KindReport, Provider: "p", Model: "m", Markdown: "x"}
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("noop save: %v", err)
	}
	list, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("noop list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("noop store returned entries: %v", list)
	}
}
