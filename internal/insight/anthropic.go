package insight

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements Provider using the Anthropic Messages API.
// It handles the text and article paths; video payloads are not accepted.
type AnthropicProvider struct {
	client         *anthropic.Client
	model          string
	thinkingBudget int64 // 0 = disabled
	prompts        PromptOverrides
	debug          bool
}

// parseAnthropicThinking extracts a -thinking suffix from a model name.
// "claude-sonnet-4-5-thinking" -> ("claude-sonnet-4-5", 10000).
func parseAnthropicThinking(model string) (string, int64) {
	if strings.HasSuffix(model, "-thinking") {
		return strings.TrimSuffix(model, "-thinking"), 10000
	}
	return model, 0
}

func NewAnthropicProvider(apiKey, model string, prompts PromptOverrides, debug bool) *AnthropicProvider {
	if model == "" {
		model = "claude-sonnet-4-5"
	}
	actualModel, budget := parseAnthropicThinking(model)
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{
		client:         &client,
		model:          actualModel,
		thinkingBudget: budget,
		prompts:        prompts,
		debug:          debug,
	}
}

func (p *AnthropicProvider) Name() string {
	if p.thinkingBudget > 0 {
		return fmt.Sprintf("Anthropic (%s, thinking=%d)", p.model, p.thinkingBudget)
	}
	return fmt.Sprintf("Anthropic (%s)", p.model)
}

func (p *AnthropicProvider) AnalyzeVideo(ctx context.Context, req VideoRequest) (*Result, error) {
	return nil, failGeneration("report", ErrVideoUnsupported)
}

func (p *AnthropicProvider) AnalyzeText(ctx context.Context, req TextRequest) (*Result, error) {
	return p.generate(ctx, "report", p.prompts.TextReportPrompt(), TextUserPrompt(req.Text, req.Instructions), p.thinkingBudget)
}

func (p *AnthropicProvider) GenerateArticle(ctx context.Context, req ArticleRequest) (*Result, error) {
	budget := p.thinkingBudget
	if req.Thinking && budget == 0 {
		budget = 10000
	}
	return p.generate(ctx, "article", p.prompts.ArticlePrompt(req.Thinking), ArticleUserPrompt(req.Report), budget)
}

func (p *AnthropicProvider) generate(ctx context.Context, op, system, user string, thinkingBudget int64) (*Result, error) {
	start := time.Now()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 8192,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if thinkingBudget > 0 {
		params.MaxTokens = 16000
		params.Thinking = anthropic.ThinkingConfigParamUnion{
			OfEnabled: &anthropic.ThinkingConfigEnabledParam{
				BudgetTokens: thinkingBudget,
			},
		}
	}

	if p.debug {
		fmt.Fprintln(os.Stderr, "=== DEBUG: Anthropic Request ===")
		fmt.Fprintf(os.Stderr, "Op: %s\n", op)
		fmt.Fprintf(os.Stderr, "Model: %s\n", p.model)
		fmt.Fprintf(os.Stderr, "System: %s\n", truncate(system, 200))
		fmt.Fprintf(os.Stderr, "User: %s\n", truncate(user, 200))
		fmt.Fprintf(os.Stderr, "Thinking: %d\n", thinkingBudget)
		fmt.Fprintln(os.Stderr, "================================")
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, failGeneration(op, fmt.Errorf("anthropic API error: %w", err))
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil, failGeneration(op, fmt.Errorf("anthropic returned an empty response"))
	}

	return &Result{
		Markdown: sb.String(),
		Provider: "anthropic",
		Model:    p.model,
		Usage: Usage{
			InputTokens:  int32(msg.Usage.InputTokens),
			OutputTokens: int32(msg.Usage.OutputTokens),
			TotalTokens:  int32(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
		Duration: time.Since(start),
	}, nil
}
