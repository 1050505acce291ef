package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

func TestJudge_Verdicts(t *testing.T) {
	tests := []struct {
		reply string
		want  model.Side
		valid bool
	}{
		{"Headline 1", model.SideLeft, true},
		{"Headline 2", model.SideRight, true},
		{"Both matter", "", false},
		{"", "", false},
		{"left", "", false},
		{"right", "", false},
		{"headline 1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			provider := &MockProvider{Replies: []string{tt.reply}}
			judge := NewJudge(provider, "judge-model", 0)

			got, err := judge.Judge(context.Background(), "Bus fares rise", "Park renamed")
			if tt.valid {
				if err != nil {
					t.Fatalf("Judge failed: %v", err)
				}
				if got != tt.want {
					t.Errorf("Expected side %q, got %q", tt.want, got)
				}
				return
			}

			var perr *model.JudgeProtocolError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected JudgeProtocolError for reply %q, got side %q err %v", tt.reply, got, err)
			}
			if perr.Value != tt.reply || perr.Left != "Bus fares rise" || perr.Right != "Park renamed" {
				t.Errorf("Unexpected protocol error: %+v", perr)
			}
			if got.Valid() {
				t.Errorf("Expected no valid side for reply %q, got %q", tt.reply, got)
			}
		})
	}
}

func TestJudge_Request(t *testing.T) {
	provider := &MockProvider{Replies: []string{"Headline 2"}}
	judge := NewJudge(provider, "judge-model", 16)

	if _, err := judge.Judge(context.Background(), "Left headline", "Right headline"); err != nil {
		t.Fatalf("Judge failed: %v", err)
	}

	req := provider.Requests[0]
	if req.Model != "judge-model" || req.MaxTokens != 16 {
		t.Errorf("Unexpected request settings: %+v", req)
	}
	first := strings.Index(req.Prompt, "Headline 1: Left headline")
	second := strings.Index(req.Prompt, "Headline 2: Right headline")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Expected left headline shown first, prompt:\n%s", req.Prompt)
	}
}

func TestJudge_ProviderError(t *testing.T) {
	cause := errors.New("connection refused")
	judge := NewJudge(&MockProvider{Err: cause}, "", 0)

	_, err := judge.Judge(context.Background(), "a", "b")
	if !errors.Is(err, cause) {
		t.Fatalf("Expected wrapped provider error, got %v", err)
	}
}
