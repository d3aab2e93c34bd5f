package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
)

type claudeMessageRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Temperature      float64         `json:"temperature"`
	System           string          `json:"system,omitempty"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

var anthropicVersion = "bedrock-2023-05-31"

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	payload := claudeMessageRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        request.MaxTokens,
		Temperature:      request.Temperature,
		System:           request.System,
		Messages:         make([]claudeMessage, 0, len(request.Messages)),
	}
	for _, m := range request.Messages {
		payload.Messages = append(payload.Messages, claudeMessage{Role: string(m.Role), Content: m.Content})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, llm.NewError(providerName, llm.KindInternal, fmt.Errorf("unable to serialize claude request: %w", err))
	}

	output, err := c.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.ModelID),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, llm.Wrap(providerName, fmt.Errorf("unable to invoke claude model: %w", err), classify)
	}

	var response claudeMessageResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, llm.NewError(providerName, llm.KindServiceUnavailable, fmt.Errorf("failed to unmarshal bedrock response: %w", err))
	}

	var content string
	for _, block := range response.Content {
		if block.Type == "text" || block.Type == "" {
			content += block.Text
		}
	}

	return &llm.LLMResponse{
		Content:    content,
		StopReason: response.StopReason,
	}, nil
}

func classify(err error) (llm.ErrorKind, bool) {
	var (
		accessDenied *types.AccessDeniedException
		throttling   *types.ThrottlingException
		quota        *types.ServiceQuotaExceededException
		unavailable  *types.ServiceUnavailableException
		internal     *types.InternalServerException
		modelTimeout *types.ModelTimeoutException
	)

	switch {
	case errors.As(err, &accessDenied):
		return llm.KindAuthInvalid, true
	case errors.As(err, &throttling), errors.As(err, &quota):
		return llm.KindRateLimited, true
	case errors.As(err, &unavailable), errors.As(err, &internal), errors.As(err, &modelTimeout):
		return llm.KindServiceUnavailable, true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException", "ExpiredTokenException", "InvalidSignatureException":
			return llm.KindAuthInvalid, true
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return llm.KindFromStatus(respErr.HTTPStatusCode()), true
	}

	return "", false
}
