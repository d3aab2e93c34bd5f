package llm

import (
	"context"
	"time"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 30 * time.Second

type timeoutClient struct {
	inner   LLMClient
	timeout time.Duration
}

// WithTimeout bounds every call made through client.
func WithTimeout(client LLMClient, timeout time.Duration) LLMClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &timeoutClient{inner: client, timeout: timeout}
}

func (c *timeoutClient) InvokeModel(ctx context.Context, request LLMRequest) (*LLMResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.inner.InvokeModel(ctx, request)
	if err != nil {
		return nil, Wrap("llm", err, nil)
	}
	return resp, nil
}
