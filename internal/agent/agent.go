package agent

import (
	"context"
	"strings"

	"github.com/Reason-jin/yj-portfolio-site/internal/config"
	"github.com/Reason-jin/yj-portfolio-site/internal/knowledge"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/rs/zerolog"
)

// Input is everything a topic agent sees for one request.
type Input struct {
	Message  string
	History  []models.HistoryEntry
	Context  map[string]any
	Language models.Language
}

// DocumentSelector resolves grounding document ids.
type DocumentSelector interface {
	Select(ids []string) []models.Document
}

// TopicAgent answers one intent with a fixed profile and optional post-processing.
type TopicAgent struct {
	tag                models.AgentTag
	profile            config.AgentProfile
	englishInstruction string
	grounding          string
	historyWindow      int
	decorate           func(message string, resp *models.AgentResponse)
	llmClient          llm.LLMClient
	logger             *zerolog.Logger
}

type Options struct {
	// HistoryWindow is how many trailing history entries go into the prompt.
	HistoryWindow int
}

func newTopicAgent(
	tag models.AgentTag,
	profileName string,
	cfg *config.AgentsConfig,
	docs DocumentSelector,
	llmClient llm.LLMClient,
	opts Options,
	logger *zerolog.Logger,
) *TopicAgent {
	profile := cfg.Profile(profileName)

	return &TopicAgent{
		tag:                tag,
		profile:            profile,
		englishInstruction: cfg.EnglishInstruction,
		grounding:          knowledge.FormatGrounding(docs.Select(profile.Documents)),
		historyWindow:      opts.HistoryWindow,
		llmClient:          llmClient,
		logger:             logger,
	}
}

// NewInterviewAgent answers as the candidate and attaches keyword follow-ups.
func NewInterviewAgent(cfg *config.AgentsConfig, docs DocumentSelector, llmClient llm.LLMClient, opts Options, logger *zerolog.Logger) *TopicAgent {
	a := newTopicAgent(models.AgentInterview, config.ProfileInterview, cfg, docs, llmClient, opts, logger)
	a.decorate = func(message string, resp *models.AgentResponse) {
		resp.FollowUp = FollowUps(message, cfg.FollowUps, cfg.DefaultFollowUps)
	}
	return a
}

// NewProjectAgent explains projects and attaches matching resource links.
func NewProjectAgent(cfg *config.AgentsConfig, docs DocumentSelector, llmClient llm.LLMClient, opts Options, logger *zerolog.Logger) *TopicAgent {
	a := newTopicAgent(models.AgentProject, config.ProfileProject, cfg, docs, llmClient, opts, logger)
	a.decorate = func(message string, resp *models.AgentResponse) {
		resp.Resources = Resources(message, cfg.Resources)
	}
	return a
}

func NewCareerAgent(cfg *config.AgentsConfig, docs DocumentSelector, llmClient llm.LLMClient, opts Options, logger *zerolog.Logger) *TopicAgent {
	return newTopicAgent(models.AgentCareer, config.ProfileCareer, cfg, docs, llmClient, opts, logger)
}

func NewGeneralAgent(cfg *config.AgentsConfig, docs DocumentSelector, llmClient llm.LLMClient, opts Options, logger *zerolog.Logger) *TopicAgent {
	return newTopicAgent(models.AgentGeneral, config.ProfileGeneral, cfg, docs, llmClient, opts, logger)
}

func (a *TopicAgent) Name() models.AgentTag {
	return a.tag
}

// Respond returns generation failures unchanged so the caller can map them.
func (a *TopicAgent) Respond(ctx context.Context, in Input) (*models.AgentResponse, error) {
	request := llm.LLMRequest{
		System:      withGrounding(a.profile.Prompt(string(in.Language), a.englishInstruction), a.grounding, in.Language),
		Messages:    conversationTurns(in.History, a.historyWindow, in.Message),
		MaxTokens:   a.profile.MaxTokens,
		Temperature: a.profile.Temperature,
	}

	resp, err := a.llmClient.InvokeModel(ctx, request)
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("agent", string(a.tag)).
			Str("error_kind", string(llm.KindOf(err))).
			Msg("agent generation failed")
		return nil, err
	}

	out := &models.AgentResponse{
		Reply: strings.TrimSpace(resp.Content),
		Agent: a.tag,
	}
	if a.decorate != nil {
		a.decorate(in.Message, out)
	}

	return out, nil
}

func withGrounding(prompt, grounding string, lang models.Language) string {
	if grounding == "" {
		return prompt
	}

	heading := "## 참고 자료"
	if lang == models.LanguageEnglish {
		heading = "## Reference material"
	}
	return strings.TrimRight(prompt, "\n") + "\n\n" + heading + "\n" + grounding
}
