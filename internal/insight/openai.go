package insight

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider implements Provider using the OpenAI chat completions API.
// It handles the text and article paths; video payloads are not accepted.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	effort  string // reasoning effort: "low", "medium", "high", "xhigh", or ""
	prompts PromptOverrides
	debug   bool
}

// parseModelEffort extracts an effort suffix from a model name.
// "gpt-5.2-high" -> ("gpt-5.2", "high"); "gpt-5.2" -> ("gpt-5.2", "").
func parseModelEffort(model string) (string, string) {
	// Longest suffixes first so "-high" never claims "-xhigh".
	for _, effort := range []string{"xhigh", "medium", "high", "low"} {
		suffix := "-" + effort
		if strings.HasSuffix(model, suffix) {
			return strings.TrimSuffix(model, suffix), effort
		}
	}
	return model, ""
}

func NewOpenAIProvider(apiKey, model string, prompts PromptOverrides, debug bool) *OpenAIProvider {
	if model == "" {
		model = "gpt-5.2"
	}
	actualModel, effort := parseModelEffort(model)
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		client:  &client,
		model:   actualModel,
		effort:  effort,
		prompts: prompts,
		debug:   debug,
	}
}

func (p *OpenAIProvider) Name() string {
	if p.effort != "" {
		return fmt.Sprintf("OpenAI (%s, effort=%s)", p.model, p.effort)
	}
	return fmt.Sprintf("OpenAI (%s)", p.model)
}

func (p *OpenAIProvider) AnalyzeVideo(ctx context.Context, req VideoRequest) (*Result, error) {
	return nil, failGeneration("report", ErrVideoUnsupported)
}

func (p *OpenAIProvider) AnalyzeText(ctx context.Context, req TextRequest) (*Result, error) {
	return p.generate(ctx, "report", p.prompts.TextReportPrompt(), TextUserPrompt(req.Text, req.Instructions), p.effort)
}

func (p *OpenAIProvider) GenerateArticle(ctx context.Context, req ArticleRequest) (*Result, error) {
	effort := p.effort
	if req.Thinking {
		effort = "high"
	}
	return p.generate(ctx, "article", p.prompts.ArticlePrompt(req.Thinking), ArticleUserPrompt(req.Report), effort)
}

func (p *OpenAIProvider) generate(ctx context.Context, op, system, user, effort string) (*Result, error) {
	start := time.Now()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}
	if effort != "" {
		params.ReasoningEffort = openai.ReasoningEffort(effort)
	}

	if p.debug {
		fmt.Fprintln(os.Stderr, "=== DEBUG: OpenAI Request ===")
		fmt.Fprintf(os.Stderr, "Op: %s\n", op)
		fmt.Fprintf(os.Stderr, "Model: %s\n", p.model)
		fmt.Fprintf(os.Stderr, "System: %s\n", truncate(system, 200))
		fmt.Fprintf(os.Stderr, "User: %s\n", truncate(user, 200))
		fmt.Fprintln(os.Stderr, "=============================")
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, failGeneration(op, fmt.Errorf("openai API error: %w", err))
	}
	if len(resp.Choices) == 0 {
		return nil, failGeneration(op, fmt.Errorf("openai returned no choices"))
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return nil, failGeneration(op, fmt.Errorf("openai returned an empty response"))
	}

	return &Result{
		Markdown: text,
		Provider: "openai",
		Model:    p.model,
		Usage: Usage{
			InputTokens:  int32(resp.Usage.PromptTokens),
			OutputTokens: int32(resp.Usage.CompletionTokens),
			TotalTokens:  int32(resp.Usage.TotalTokens),
		},
		Duration: time.Since(start),
	}, nil
}
