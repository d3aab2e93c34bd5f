package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"google.golang.org/genai"
)

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	contents := make([]*genai.Content, 0, len(request.Messages))
	for _, m := range request.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == llm.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(request.Temperature)),
		MaxOutputTokens: int32(request.MaxTokens),
	}
	if request.System != "" {
		config.SystemInstruction = genai.NewContentFromText(request.System, "")
	}

	resp, err := c.Models.GenerateContent(ctx, c.ModelID, contents, config)
	if err != nil {
		return nil, llm.Wrap(providerName, fmt.Errorf("unable to invoke gemini model: %w", err), classify)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, llm.NewError(providerName, llm.KindServiceUnavailable, errors.New("no candidates in response"))
	}

	return &llm.LLMResponse{
		Content:    resp.Text(),
		StopReason: string(resp.Candidates[0].FinishReason),
	}, nil
}

func classify(err error) (llm.ErrorKind, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return llm.KindFromStatus(apiErr.Code), true
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return llm.KindFromStatus(apiErrPtr.Code), true
	}

	return "", false
}
