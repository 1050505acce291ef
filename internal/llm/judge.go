package llm

import (
	"context"
	"fmt"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// Judge compares two headlines with a language model. A reply other than the
// two verdict tokens is a *model.JudgeProtocolError carrying the raw reply;
// the tournament fills in the window and pair.
type Judge struct {
	provider  Provider
	model     string
	maxTokens int
}

// NewJudge creates a headline judge. An empty model uses the provider's.
func NewJudge(provider Provider, model string, maxTokens int) *Judge {
	if maxTokens <= 0 {
		maxTokens = 64
	}
	return &Judge{provider: provider, model: model, maxTokens: maxTokens}
}

// Judge asks which headline is more important. left is shown first.
func (j *Judge) Judge(ctx context.Context, left, right string) (model.Side, error) {
	resp, err := j.provider.Complete(ctx, CompletionRequest{
		Prompt:    BuildComparisonPrompt(left, right),
		Model:     j.model,
		MaxTokens: j.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("compare headlines: %w", err)
	}

	switch resp.Text {
	case VerdictFirst:
		return model.SideLeft, nil
	case VerdictSecond:
		return model.SideRight, nil
	default:
		return "", &model.JudgeProtocolError{Left: left, Right: right, Value: resp.Text}
	}
}
