package insight

import "testing"

func TestParseModelEffort(t *testing.T) {
	tests := []struct {
		model      string
		wantModel  string
		wantEffort string
	}{
		{"gpt-5.2", "gpt-5.2", ""},
		{"gpt-5.2-low", "gpt-5.2", "low"},
		{"gpt-5.2-medium", "gpt-5.2", "medium"},
		{"gpt-5.2-high", "gpt-5.2", "high"},
		{"gpt-5.2-xhigh", "gpt-5.2", "xhigh"},
		{"o4-mini", "o4-mini", ""},
	}
	for _, tt := range tests {
		model, effort := parseModelEffort(tt.model)
		if model != tt.wantModel || effort != tt.wantEffort {
			t.Errorf("parseModelEffort(%q)=(%q,%q), want (%q,%q)",
				tt.model, model, effort, tt.wantModel, tt.wantEffort)
		}
	}
}
