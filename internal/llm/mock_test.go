package llm

import (
	"context"
	"sync"
)

// MockProvider records requests and replies from a script
type MockProvider struct {
	mu        sync.Mutex
	Replies   []string
	Err       error
	Requests  []CompletionRequest
	available bool
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) IsAvailable(ctx context.Context) bool { return m.available }

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	text := ""
	if len(m.Replies) > 0 {
		text = m.Replies[0]
		m.Replies = m.Replies[1:]
	}
	return &CompletionResponse{Text: text, Model: req.Model}, nil
}

func (m *MockProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
