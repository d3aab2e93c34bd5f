package gemini

import (
	"context"
	"testing"

	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"google.golang.org/genai"
)

type fakeModels struct {
	resp     *genai.GenerateContentResponse
	err      error
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	model    string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func TestInvokeModel_Success(t *testing.T) {
	models := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText("answer", genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}},
	}}
	client := &Client{Models: models, ModelID: "gemini-2.5-flash"}

	resp, err := client.InvokeModel(context.Background(), llm.LLMRequest{
		System: "sys",
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "q1"},
			{Role: llm.RoleAssistant, Content: "a1"},
			{Role: llm.RoleUser, Content: "q2"},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "answer" {
		t.Errorf("expected answer, got %q", resp.Content)
	}
	if models.model != "gemini-2.5-flash" {
		t.Errorf("unexpected model %s", models.model)
	}
	if len(models.contents) != 3 || models.contents[1].Role != genai.RoleModel {
		t.Errorf("unexpected contents: %+v", models.contents)
	}
	if models.config.SystemInstruction == nil || models.config.MaxOutputTokens != 200 {
		t.Errorf("unexpected config: %+v", models.config)
	}
}

func TestInvokeModel_ErrorKinds(t *testing.T) {
	tests := []struct {
		code int
		want llm.ErrorKind
	}{
		{401, llm.KindAuthInvalid},
		{429, llm.KindRateLimited},
		{503, llm.KindServiceUnavailable},
	}

	for _, tt := range tests {
		client := &Client{Models: &fakeModels{err: genai.APIError{Code: tt.code, Message: "x"}}, ModelID: "m"}
		_, err := client.InvokeModel(context.Background(), llm.UserPrompt("", "hi", 10, 0))
		if got := llm.KindOf(err); got != tt.want {
			t.Errorf("code %d: expected %s, got %s", tt.code, tt.want, got)
		}
	}
}

func TestInvokeModel_NoCandidates(t *testing.T) {
	client := &Client{Models: &fakeModels{resp: &genai.GenerateContentResponse{}}, ModelID: "m"}

	_, err := client.InvokeModel(context.Background(), llm.UserPrompt("", "hi", 10, 0))
	if llm.KindOf(err) != llm.KindServiceUnavailable {
		t.Errorf("expected service_unavailable, got %v", err)
	}
}
