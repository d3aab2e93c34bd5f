// Package llmtest provides a recording LLMClient for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
)

// MockLLMClient returns queued responses in order; once the queue is drained it
// keeps returning ResponseToReturn. ErrorToReturn takes precedence over both.
type MockLLMClient struct {
	ResponseToReturn string
	Responses        []string
	ErrorToReturn    error

	mu          sync.Mutex
	WasCalled   bool
	LastRequest llm.LLMRequest
	Requests    []llm.LLMRequest
}

func (m *MockLLMClient) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WasCalled = true
	m.LastRequest = request
	m.Requests = append(m.Requests, request)

	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	content := m.ResponseToReturn
	if len(m.Responses) > 0 {
		content = m.Responses[0]
		m.Responses = m.Responses[1:]
	}

	return &llm.LLMResponse{Content: content, StopReason: "stop"}, nil
}

func (m *MockLLMClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
