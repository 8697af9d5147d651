package insight

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// reportSections are the section headings every analysis report is asked to
// produce, in order.
var reportSections = []string{
	"Executive Summary",
	"Breakdown",
	"Key Insights",
	"Resources Mentioned",
	"Actionable Takeaways",
	"Notes",
}

const reportPrompt = `You are a meticulous video analyst. Watch the provided video in full, then write a markdown analysis report with exactly this structure:

Start with a level-1 heading naming the video, followed by a one-line identification: what kind of video it is, who made it, and roughly when.

## Executive Summary
Two or three tight paragraphs capturing the whole video for someone who will never watch it.

## Breakdown
Chapter the video chronologically. One level-3 heading per chapter (include timestamps when you can read them), with a short paragraph per chapter.

## Key Insights
A bulleted list of the genuinely non-obvious points.

## Resources Mentioned
A markdown table with columns | Resource | Type | Where in video |. Include every tool, book, paper, product, or site that is named. If none, write "None mentioned."

## Actionable Takeaways
A numbered list of concrete things a viewer could do next.

## Notes
Caveats, errors you noticed, missing context, or anything that fits nowhere else.

Rules:
1. Markdown only: headings, tables, lists, bold, and links. No HTML.
2. Do not invent chapters or resources that are not in the video.
3. Keep every section, even when it is short.`

const textReportPrompt = `You are a meticulous content analyst. Read the provided text in full - it may be a transcript, an article, or raw notes - and write a markdown analysis report with exactly this structure:

Start with a level-1 heading naming the content, followed by a one-line identification of what it is and where it appears to come from.

## Executive Summary
Two or three tight paragraphs capturing the whole text for someone who will never read it.

## Breakdown
Chapter the text by topic. One level-3 heading per chapter with a short paragraph each.

## Key Insights
A bulleted list of the genuinely non-obvious points.

## Resources Mentioned
A markdown table with columns | Resource | Type | Context |. Include every tool, book, paper, product, or site that is named. If none, write "None mentioned."

## Actionable Takeaways
A numbered list of concrete things a reader could do next.

## Notes
Caveats, errors you noticed, missing context, or anything that fits nowhere else.

Rules:
1. Markdown only: headings, tables, lists, bold, and links. No HTML.
2. Use web search to verify claims and locate primary sources where it helps.
3. Keep every section, even when it is short.`

const articlePrompt = `You are a long-form writer. Expand the analysis report the user provides into a complete standalone article.

Rules:
1. Write flowing prose in markdown: an engaging title as a level-1 heading, level-2 section headings, short paragraphs.
2. Cover every section of the report; weave tables and lists into prose where that reads better.
3. Keep all factual claims from the report; do not add facts of your own.
4. Aim for roughly 1200-2000 words.`

const articleThinkingRule = `
5. Take your time: reason carefully about structure and narrative before writing; favor depth over speed.`

// PromptOverrides lets users replace the built-in prompt templates from a
// prompts.yaml next to the config file. Empty fields keep the built-ins.
type PromptOverrides struct {
	Report  string `yaml:"report"`
	Text    string `yaml:"text_report"`
	Article string `yaml:"article"`
}

// LoadPromptOverrides reads the override file. A missing file is not an
// error; every template just stays built-in.
func LoadPromptOverrides(path string) (PromptOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return PromptOverrides{}, nil
		}
		return PromptOverrides{}, fmt.Errorf("failed to read prompt overrides: %w", err)
	}
	var o PromptOverrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return PromptOverrides{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return o, nil
}

// ReportPrompt returns the system prompt for video analysis.
func (o PromptOverrides) ReportPrompt() string {
	if o.Report != "" {
		return o.Report
	}
	return reportPrompt
}

// TextReportPrompt returns the system prompt for pasted-text analysis.
func (o PromptOverrides) TextReportPrompt() string {
	if o.Text != "" {
		return o.Text
	}
	return textReportPrompt
}

// ArticlePrompt returns the system prompt for article generation. The
// thinking rule is appended only to the built-in template; an override is
// used verbatim.
func (o PromptOverrides) ArticlePrompt(thinking bool) string {
	if o.Article != "" {
		return o.Article
	}
	if thinking {
		return articlePrompt + articleThinkingRule
	}
	return articlePrompt
}

// VideoUserPrompt is the text part sent alongside the video payload.
func VideoUserPrompt(instructions string) string {
	base := "Analyze this video."
	if strings.TrimSpace(instructions) != "" {
		base += "\n\nAdditional instructions from the user:\n" + instructions
	}
	return base
}

// TextUserPrompt wraps pasted text for analysis.
func TextUserPrompt(text, instructions string) string {
	base := "Analyze the following content:\n\n" + text
	if strings.TrimSpace(instructions) != "" {
		base += "\n\nAdditional instructions from the user:\n" + instructions
	}
	return base
}

// ArticleUserPrompt wraps a prior report for expansion.
func ArticleUserPrompt(report string) string {
	return "Expand this analysis report into a full article:\n\n" + report
}
