package insight

import "testing"

func TestParseAnthropicThinking(t *testing.T) {
	model, budget := parseAnthropicThinking("claude-sonnet-4-5")
	if model != "claude-sonnet-4-5" || budget != 0 {
		t.Errorf("got (%q,%d), want no thinking budget", model, budget)
	}

	model, budget = parseAnthropicThinking("claude-sonnet-4-5-thinking")
	if model != "claude-sonnet-4-5" {
		t.Errorf("model=%q, want suffix stripped", model)
	}
	if budget == 0 {
		t.Error("thinking suffix should set a budget")
	}
}
