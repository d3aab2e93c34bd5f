package router

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Reason-jin/yj-portfolio-site/internal/config"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/rs/zerolog"
)

const (
	fallbackIntent     = models.IntentGeneral
	fallbackConfidence = 0.5
)

type classifierOutput struct {
	Intent     string   `json:"intent"`
	Confidence *float64 `json:"confidence"`
	SubTopic   *string  `json:"sub_topic"`
}

// Router classifies a message into one of the fixed intents.
type Router struct {
	llmClient llm.LLMClient
	cfg       config.RouterConfig
	logger    *zerolog.Logger
}

func NewRouter(llmClient llm.LLMClient, cfg config.RouterConfig, logger *zerolog.Logger) *Router {
	return &Router{
		llmClient: llmClient,
		cfg:       cfg,
		logger:    logger,
	}
}

// Fallback is the classification used whenever the classifier cannot decide.
func Fallback() models.Classification {
	return models.Classification{
		Intent:     fallbackIntent,
		Confidence: fallbackConfidence,
		SubTopic:   nil,
		Fallback:   true,
	}
}

// Classify never fails: generation errors and unusable output yield Fallback().
func (r *Router) Classify(ctx context.Context, message string) models.Classification {
	resp, err := r.llmClient.InvokeModel(ctx, llm.UserPrompt(
		r.cfg.Prompt,
		message,
		r.cfg.MaxTokens,
		r.cfg.Temperature,
	))
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("error_kind", string(llm.KindOf(err))).
			Msg("intent classification failed, using fallback")
		return Fallback()
	}

	classification, ok := Parse(resp.Content)
	if !ok {
		r.logger.Warn().
			Str("raw_output", resp.Content).
			Msg("unusable classifier output, using fallback")
		return Fallback()
	}

	r.logger.Debug().
		Str("intent", string(classification.Intent)).
		Float64("confidence", classification.Confidence).
		Msg("message classified")

	return classification
}

// Parse decodes classifier output. ok is false when the output is malformed or
// names an unknown intent.
func Parse(content string) (models.Classification, bool) {
	var out classifierOutput
	if err := json.Unmarshal([]byte(stripMarkdownCodeBlock(content)), &out); err != nil {
		return models.Classification{}, false
	}

	intent := models.Intent(strings.ToLower(strings.TrimSpace(out.Intent)))
	switch intent {
	case models.IntentInterview, models.IntentProject, models.IntentCareer, models.IntentGeneral:
	default:
		return models.Classification{}, false
	}

	if out.Confidence == nil || *out.Confidence < 0 || *out.Confidence > 1 {
		return models.Classification{}, false
	}

	var subTopic *string
	if out.SubTopic != nil {
		if s := strings.TrimSpace(*out.SubTopic); s != "" {
			subTopic = &s
		}
	}

	return models.Classification{
		Intent:     intent,
		Confidence: *out.Confidence,
		SubTopic:   subTopic,
	}, true
}

func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "```") {
		return content
	}

	firstNewline := strings.Index(content, "\n")
	if firstNewline == -1 {
		return content
	}

	closing := strings.LastIndex(content, "```")
	if closing <= firstNewline {
		return content
	}

	return strings.TrimSpace(content[firstNewline+1 : closing])
}
