package serve

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/samsaffron/vidbrief/internal/insight"
	"github.com/samsaffron/vidbrief/internal/markdown"
	"github.com/samsaffron/vidbrief/internal/store"
)

// generationResponse is the JSON shape returned for a completed generation,
// both fresh ones and history lookups.
type generationResponse struct {
	ID         int64            `json:"id,omitempty"`
	Kind       string           `json:"kind"`
	Title      string           `json:"title,omitempty"`
	Markdown   string           `json:"markdown"`
	HTML       string           `json:"html"`
	Sources    []insight.Source `json:"sources,omitempty"`
	Provider   string           `json:"provider"`
	Model      string           `json:"model"`
	Usage      insight.Usage    `json:"usage"`
	DurationMs int64            `json:"duration_ms"`
}

type reportRequest struct {
	Text         string `json:"text"`
	Instructions string `json:"instructions"`
}

type articleRequest struct {
	ReportID int64  `json:"report_id"`
	Report   string `json:"report"`
	Thinking bool   `json:"thinking"`
}

type renderRequest struct {
	Markdown string `json:"markdown"`
}

// handleReport accepts either a multipart form with a "video" file or a JSON
// body with pasted text, and responds with the generated report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		s.handleVideoReport(w, r)
		return
	}

	if err := requireJSONContentType(r); err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, err.Error())
		return
	}
	var req reportRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, KindInputValidation, insight.ErrNoInput.Error())
		return
	}

	result, err := s.provider.AnalyzeText(r.Context(), insight.TextRequest{
		Text:         req.Text,
		Instructions: req.Instructions,
	})
	s.respondGeneration(w, r, store.KindReport, "text", result, err)
}

func (s *Server) handleVideoReport(w http.ResponseWriter, r *http.Request) {
	// Leave headroom for the multipart framing on top of the video cap.
	r.Body = http.MaxBytesReader(w, r.Body, insight.MaxVideoBytes+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, insight.ErrNoInput.Error())
		return
	}
	defer file.Close()

	mimeType, err := insight.DetectVideoMIME(header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, KindUnsupportedFileType, err.Error())
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, insight.MaxVideoBytes+1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, KindInternal, "failed to read uploaded file")
		return
	}
	if err := insight.CheckVideoSize(int64(len(data))); err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, err.Error())
		return
	}

	result, err := s.provider.AnalyzeVideo(r.Context(), insight.VideoRequest{
		Path:         header.Filename,
		MIMEType:     mimeType,
		Data:         data,
		Instructions: r.FormValue("instructions"),
	})
	if errors.Is(err, insight.ErrVideoUnsupported) {
		writeError(w, http.StatusBadRequest, KindUnsupportedFileType, err.Error())
		return
	}
	s.respondGeneration(w, r, store.KindReport, header.Filename, result, err)
}

// handleArticle expands a report into a long-form article. The report comes
// from the request body, a stored generation by id, or the most recent report.
func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	if err := requireJSONContentType(r); err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, err.Error())
		return
	}
	var req articleRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, err.Error())
		return
	}

	report := strings.TrimSpace(req.Report)
	source := "inline"
	if report == "" && req.ReportID != 0 {
		g, err := s.store.Get(r.Context(), req.ReportID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, KindInternal, "failed to load report")
			return
		}
		if g == nil {
			writeError(w, http.StatusNotFound, KindNotFound, fmt.Sprintf("report %d not found", req.ReportID))
			return
		}
		report = g.Markdown
		source = fmt.Sprintf("report %d", g.ID)
	}
	if report == "" {
		g, err := s.store.Latest(r.Context(), store.KindReport)
		if err != nil {
			writeError(w, http.StatusInternalServerError, KindInternal, "failed to load latest report")
			return
		}
		if g != nil {
			report = g.Markdown
			source = fmt.Sprintf("report %d", g.ID)
		}
	}
	if report == "" {
		writeError(w, http.StatusBadRequest, KindInputValidation, "no report to expand, generate one first")
		return
	}

	result, err := s.provider.GenerateArticle(r.Context(), insight.ArticleRequest{
		Report:   report,
		Thinking: req.Thinking,
	})
	s.respondGeneration(w, r, store.KindArticle, source, result, err)
}

// handleRender converts markdown to an HTML fragment without calling a provider.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if err := requireJSONContentType(r); err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, err.Error())
		return
	}
	var req renderRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": markdown.Render(req.Markdown)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	opts := store.ListOptions{Kind: r.URL.Query().Get("kind")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, KindInputValidation, "invalid limit")
			return
		}
		opts.Limit = n
	}

	sums, err := s.store.List(r.Context(), opts)
	if err != nil {
		s.log.Error("history list failed", "error", err)
		writeError(w, http.StatusInternalServerError, KindInternal, "failed to list history")
		return
	}
	if sums == nil {
		sums = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": sums})
}

func (s *Server) handleHistoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, "invalid generation id")
		return
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.log.Error("history get failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, KindInternal, "failed to load generation")
		return
	}
	if g == nil {
		writeError(w, http.StatusNotFound, KindNotFound, fmt.Sprintf("generation %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, generationResponse{
		ID:       g.ID,
		Kind:     g.Kind,
		Title:    g.Title,
		Markdown: g.Markdown,
		HTML:     markdown.Render(g.Markdown),
		Sources:  g.Sources,
		Provider: g.Provider,
		Model:    g.Model,
		Usage: insight.Usage{
			InputTokens:  int32(g.InputTokens),
			OutputTokens: int32(g.OutputTokens),
		},
		DurationMs: g.DurationMs,
	})
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, KindInputValidation, "invalid generation id")
		return
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.log.Error("history delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, KindInternal, "failed to delete generation")
		return
	}
	if g == nil {
		writeError(w, http.StatusNotFound, KindNotFound, fmt.Sprintf("generation %d not found", id))
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.log.Error("history delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, KindInternal, "failed to delete generation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondGeneration saves a successful generation and writes it back to the
// client, or maps a provider failure to the generation_failed error kind.
func (s *Server) respondGeneration(w http.ResponseWriter, r *http.Request, kind, source string, result *insight.Result, err error) {
	if err != nil {
		op := "report"
		if kind == store.KindArticle {
			op = "article"
		}
		msg := fmt.Sprintf("%s generation failed, please try again", op)
		var genErr *insight.GenerationError
		if errors.As(err, &genErr) {
			msg = genErr.UserMessage()
		}
		s.log.Error("generation failed", "kind", kind, "source", source, "error", err)
		writeError(w, http.StatusBadGateway, KindGenerationFailed, msg)
		return
	}

	g := &store.Generation{
		Kind:         kind,
		Title:        markdown.Title(result.Markdown),
		Source:       source,
		Provider:     result.Provider,
		Model:        result.Model,
		Markdown:     result.Markdown,
		Sources:      result.Sources,
		InputTokens:  int(result.Usage.InputTokens),
		OutputTokens: int(result.Usage.OutputTokens),
		DurationMs:   result.Duration.Milliseconds(),
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		// History failures never block delivering the result.
		s.log.Error("failed to save generation", "kind", kind, "error", err)
	}

	writeJSON(w, http.StatusOK, generationResponse{
		ID:         g.ID,
		Kind:       kind,
		Title:      g.Title,
		Markdown:   result.Markdown,
		HTML:       markdown.Render(result.Markdown),
		Sources:    result.Sources,
		Provider:   result.Provider,
		Model:      result.Model,
		Usage:      result.Usage,
		DurationMs: result.Duration.Milliseconds(),
	})
}
