package insight

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Google Gemini API. It is the
// default backend and the only one that accepts video payloads and returns
// grounding citations.
type GeminiProvider struct {
	apiKey       string
	model        string
	articleModel string
	prompts      PromptOverrides
	debug        bool
}

// geminiThinking holds thinking configuration for a Gemini model.
type geminiThinking struct {
	level  genai.ThinkingLevel // Gemini 3: MINIMAL, LOW, HIGH
	budget *int32              // Gemini 2.5: 0 = disabled
}

// parseGeminiThinking maps a configured model name to its base model and
// thinking configuration. A "-thinking" suffix on the model name or deep=true
// raises the setting to its slow, high-quality tier.
func parseGeminiThinking(model string, deep bool) (string, geminiThinking) {
	deep = deep || strings.HasSuffix(model, "-thinking")
	base := strings.TrimSuffix(model, "-thinking")

	switch {
	// Gemini 3 Flash supports MINIMAL through HIGH.
	case strings.HasPrefix(base, "gemini-3-flash"):
		if deep {
			return base, geminiThinking{level: genai.ThinkingLevelHigh}
		}
		return base, geminiThinking{level: genai.ThinkingLevelMinimal}

	// Gemini 3 Pro supports only LOW and HIGH.
	case strings.HasPrefix(base, "gemini-3-pro"):
		if deep {
			return base, geminiThinking{level: genai.ThinkingLevelHigh}
		}
		return base, geminiThinking{level: genai.ThinkingLevelLow}

	// Gemini 2.5 models take a numeric budget instead.
	case strings.HasPrefix(base, "gemini-2.5"):
		budget := int32(0)
		if deep {
			budget = 8192
		}
		return base, geminiThinking{budget: &budget}

	default:
		return base, geminiThinking{}
	}
}

func NewGeminiProvider(apiKey, model, articleModel string, prompts PromptOverrides, debug bool) *GeminiProvider {
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	if articleModel == "" {
		articleModel = model
	}
	return &GeminiProvider{
		apiKey:       apiKey,
		model:        model,
		articleModel: articleModel,
		prompts:      prompts,
		debug:        debug,
	}
}

func (p *GeminiProvider) Name() string {
	return fmt.Sprintf("Gemini (%s)", p.model)
}

func (p *GeminiProvider) AnalyzeVideo(ctx context.Context, req VideoRequest) (*Result, error) {
	if err := CheckVideoSize(int64(len(req.Data))); err != nil {
		return nil, err
	}
	model, thinking := parseGeminiThinking(p.model, false)
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: req.MIMEType, Data: req.Data}},
			{Text: VideoUserPrompt(req.Instructions)},
		},
	}}
	return p.generate(ctx, "report", model, p.prompts.ReportPrompt(), contents, false, thinking)
}

func (p *GeminiProvider) AnalyzeText(ctx context.Context, req TextRequest) (*Result, error) {
	model, thinking := parseGeminiThinking(p.model, false)
	contents := []*genai.Content{
		genai.NewContentFromText(TextUserPrompt(req.Text, req.Instructions), genai.RoleUser),
	}
	return p.generate(ctx, "report", model, p.prompts.TextReportPrompt(), contents, true, thinking)
}

func (p *GeminiProvider) GenerateArticle(ctx context.Context, req ArticleRequest) (*Result, error) {
	model, thinking := parseGeminiThinking(p.articleModel, req.Thinking)
	contents := []*genai.Content{
		genai.NewContentFromText(ArticleUserPrompt(req.Report), genai.RoleUser),
	}
	return p.generate(ctx, "article", model, p.prompts.ArticlePrompt(req.Thinking), contents, false, thinking)
}

// generate runs one blocking GenerateContent call and shapes the result.
// Search and thinking config are mutually exclusive on the API, so search
// requests drop the thinking config.
func (p *GeminiProvider) generate(ctx context.Context, op, model, system string, contents []*genai.Content, search bool, thinking geminiThinking) (*Result, error) {
	start := time.Now()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: p.apiKey})
	if err != nil {
		return nil, failGeneration(op, fmt.Errorf("failed to create gemini client: %w", err))
	}

	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if search {
		config.Tools = append(config.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	} else if thinking.level != "" {
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingLevel: thinking.level}
	} else if thinking.budget != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: thinking.budget}
	}

	if p.debug {
		fmt.Fprintln(os.Stderr, "=== DEBUG: Gemini Request ===")
		fmt.Fprintf(os.Stderr, "Op: %s\n", op)
		fmt.Fprintf(os.Stderr, "Model: %s\n", model)
		fmt.Fprintf(os.Stderr, "System: %s\n", truncate(system, 200))
		fmt.Fprintf(os.Stderr, "Search: %v\n", search)
		fmt.Fprintf(os.Stderr, "Contents: %d\n", len(contents))
		fmt.Fprintln(os.Stderr, "=============================")
	}

	resp, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, failGeneration(op, fmt.Errorf("gemini API error: %w", err))
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, failGeneration(op, fmt.Errorf("gemini returned an empty response"))
	}

	result := &Result{
		Markdown: text,
		Provider: "gemini",
		Model:    model,
		Duration: time.Since(start),
	}
	if resp.UsageMetadata != nil {
		result.Usage = Usage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  resp.UsageMetadata.TotalTokenCount,
		}
	}
	if search {
		result.Sources = DedupeSources(geminiSources(resp))
		result.Markdown = AppendSources(text, result.Sources)
	}
	return result, nil
}

// geminiSources collects raw grounding citations; filtering and dedup happen
// in DedupeSources/AppendSources.
func geminiSources(resp *genai.GenerateContentResponse) []Source {
	var sources []Source
	for _, cand := range resp.Candidates {
		if cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			sources = append(sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return sources
}
