package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samsaffron/vidbrief/internal/input"
	"github.com/samsaffron/vidbrief/internal/insight"
	"github.com/samsaffron/vidbrief/internal/signal"
	"github.com/samsaffron/vidbrief/internal/store"
	"github.com/samsaffron/vidbrief/internal/ui"
	"github.com/spf13/cobra"
)

var (
	analyzeText         string
	analyzeFile         string
	analyzeInstructions string
	analyzeOutput       string
	analyzeProvider     string
	analyzeModel        string
	analyzeDebug        bool
	analyzeNoSave       bool
	analyzePlain        bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [video-file]",
	Short: "Generate a structured report from a video or text",
	Long: `Generate a structured markdown analysis report from a video file or from
text (a transcript, an article, raw notes).

Input methods:
  - Video file as the positional argument (mp4, mov, webm, mkv, avi, mpeg)
  - Text via --text, --file, or piped to stdin

Examples:
  vidbrief analyze talk.mp4
  vidbrief analyze talk.mp4 -i "focus on the benchmark numbers"
  vidbrief analyze --file transcript.txt
  cat notes.md | vidbrief analyze
  vidbrief analyze talk.mp4 -o report.md
  vidbrief analyze talk.mp4 -p openai:gpt-5.2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	AddProviderFlag(analyzeCmd, &analyzeProvider)
	AddModelFlag(analyzeCmd, &analyzeModel)
	AddDebugFlag(analyzeCmd, &analyzeDebug)
	AddInstructionsFlag(analyzeCmd, &analyzeInstructions)
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "Analyze this text instead of a video")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read the text to analyze from a file")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the raw markdown report to a file")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Skip saving the report to history")
	analyzeCmd.Flags().BoolVar(&analyzePlain, "plain", false, "Print raw markdown even on a terminal")
	rootCmd.AddCommand(analyzeCmd)
}

// analyzeInput is the validated input for one analyze run.
type analyzeInput struct {
	video  *insight.VideoRequest
	text   string
	source string // history label: video filename, or "text"
	label  string // spinner label
}

// resolveAnalyzeInput validates flags and arguments into a single input,
// before any provider request is made.
func resolveAnalyzeInput(args []string) (*analyzeInput, error) {
	videoPath := ""
	if len(args) > 0 {
		videoPath = args[0]
	}

	if videoPath != "" && (analyzeText != "" || analyzeFile != "") {
		return nil, fmt.Errorf("provide either a video file or text, not both")
	}

	if videoPath != "" {
		path := input.ExpandPath(videoPath)
		mimeType, err := insight.DetectVideoMIME(path)
		if err != nil {
			return nil, fmt.Errorf("cannot analyze %q: %w", videoPath, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open video: %w", err)
		}
		if err := insight.CheckVideoSize(info.Size()); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read video: %w", err)
		}
		name := filepath.Base(path)
		return &analyzeInput{
			video: &insight.VideoRequest{
				Path:         path,
				MIMEType:     mimeType,
				Data:         data,
				Instructions: analyzeInstructions,
			},
			source: name,
			label:  "Analyzing " + name,
		}, nil
	}

	text := analyzeText
	if text == "" && analyzeFile != "" {
		content, err := input.ReadTextFile(analyzeFile)
		if err != nil {
			return nil, err
		}
		text = content
	}
	if text == "" && input.HasStdin() {
		content, err := input.ReadStdin()
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		text = content
	}
	if strings.TrimSpace(text) == "" {
		return nil, insight.ErrNoInput
	}
	return &analyzeInput{
		text:   text,
		source: "text",
		label:  "Analyzing text",
	}, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	in, err := resolveAnalyzeInput(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext()
	defer stop()

	cfg, err := loadConfigWithSetup()
	if err != nil {
		return err
	}
	if err := applyProviderOverrides(cfg, analyzeProvider, analyzeModel); err != nil {
		return err
	}
	provider, err := insight.NewProvider(cfg, analyzeDebug)
	if err != nil {
		return err
	}

	result, err := ui.RunWithSpinner(ctx, in.label, analyzeDebug, func(ctx context.Context) (*insight.Result, error) {
		if in.video != nil {
			return provider.AnalyzeVideo(ctx, *in.video)
		}
		return provider.AnalyzeText(ctx, insight.TextRequest{
			Text:         in.text,
			Instructions: analyzeInstructions,
		})
	})
	if err != nil {
		return finishGeneration(cmd, err, analyzeDebug)
	}

	return deliverResult(cmd, cfg, store.KindReport, in.source, result, analyzeOutput, analyzeNoSave, analyzePlain)
}
