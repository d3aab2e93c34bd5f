package gpt

import (
	"context"
	"errors"
	"fmt"

	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/openai/openai-go"
)

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(request.Messages)+1)
	if request.System != "" {
		messages = append(messages, openai.SystemMessage(request.System))
	}
	for _, m := range request.Messages {
		if m.Role == llm.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Content))
			continue
		}
		messages = append(messages, openai.UserMessage(m.Content))
	}

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(request.MaxTokens)),
		Temperature:         openai.Float(request.Temperature),
		Model:               openai.ChatModel(c.ModelID),
	}

	output, err := c.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, llm.Wrap(providerName, fmt.Errorf("unable to invoke gpt model: %w", err), classify)
	}

	if len(output.Choices) == 0 {
		return nil, llm.NewError(providerName, llm.KindServiceUnavailable, errors.New("no choices in response"))
	}

	choice := output.Choices[0]
	return &llm.LLMResponse{
		Content:    choice.Message.Content,
		StopReason: string(choice.FinishReason),
	}, nil
}

func classify(err error) (llm.ErrorKind, bool) {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return llm.KindFromStatus(apiErr.StatusCode), true
	}
	return "", false
}
