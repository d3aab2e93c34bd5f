package agent

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/Reason-jin/yj-portfolio-site/internal/config"
	"github.com/Reason-jin/yj-portfolio-site/internal/knowledge"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"
)

type Phase string

const (
	PhaseOpening  Phase = "opening"
	PhaseProbing  Phase = "probing"
	PhaseClosing  Phase = "closing"
	PhaseComplete Phase = "complete"
)

// PhaseFor derives the interview phase from the number of interviewer turns
// already produced.
func PhaseFor(prior, maxQuestions int) Phase {
	switch {
	case prior >= maxQuestions:
		return PhaseComplete
	case prior == 0:
		return PhaseOpening
	case prior >= maxQuestions-1:
		return PhaseClosing
	default:
		return PhaseProbing
	}
}

// SimulationHistory keeps only the entries produced inside the simulation.
func SimulationHistory(history []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(history))
	for _, entry := range history {
		if entry.Agent == models.AgentSimulation {
			out = append(out, entry)
		}
	}
	return out
}

func countAssistantTurns(history []models.HistoryEntry) int {
	n := 0
	for _, entry := range history {
		if entry.Role == models.RoleAssistant {
			n++
		}
	}
	return n
}

// SimulationAgent plays the interviewer for a fixed number of questions.
type SimulationAgent struct {
	profile            config.AgentProfile
	cfg                config.SimulationConfig
	englishInstruction string
	grounding          string
	probing            map[string]*template.Template
	llmClient          llm.LLMClient
	logger             *zerolog.Logger
}

func NewSimulationAgent(cfg *config.AgentsConfig, docs DocumentSelector, llmClient llm.LLMClient, logger *zerolog.Logger) (*SimulationAgent, error) {
	profile := cfg.Profile(config.ProfileSimulation)

	probing := make(map[string]*template.Template, len(cfg.Simulation.Phases.Probing))
	for lang, text := range cfg.Simulation.Phases.Probing {
		tmpl, err := template.New("probing-" + lang).Parse(text)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse probing instruction", goerr.V("language", lang))
		}
		probing[lang] = tmpl
	}

	return &SimulationAgent{
		profile:            profile,
		cfg:                cfg.Simulation,
		englishInstruction: cfg.EnglishInstruction,
		grounding:          knowledge.FormatGrounding(docs.Select(profile.Documents)),
		probing:            probing,
		llmClient:          llmClient,
		logger:             logger,
	}, nil
}

func (a *SimulationAgent) Name() models.AgentTag {
	return models.AgentSimulation
}

func (a *SimulationAgent) Respond(ctx context.Context, in Input) (*models.AgentResponse, error) {
	sub := SimulationHistory(in.History)
	prior := countAssistantTurns(sub)
	phase := PhaseFor(prior, a.cfg.MaxQuestions)
	lang := string(in.Language)

	a.logger.Debug().
		Int("prior_turns", prior).
		Str("phase", string(phase)).
		Msg("simulation turn")

	if phase == PhaseComplete {
		return &models.AgentResponse{
			Reply: a.cfg.Completed.Get(lang),
			Agent: models.AgentSimulation,
			Simulation: &models.SimulationState{
				QuestionCount: prior,
				IsComplete:    true,
			},
		}, nil
	}

	instruction, err := a.instruction(phase, prior, lang)
	if err != nil {
		return nil, err
	}

	system := withGrounding(a.profile.Prompt(lang, a.englishInstruction), a.grounding, in.Language) + "\n\n" + instruction

	resp, err := a.llmClient.InvokeModel(ctx, llm.LLMRequest{
		System:      system,
		Messages:    conversationTurns(sub, a.cfg.HistoryLimit, in.Message),
		MaxTokens:   a.profile.MaxTokens,
		Temperature: a.profile.Temperature,
	})
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("agent", string(models.AgentSimulation)).
			Str("error_kind", string(llm.KindOf(err))).
			Msg("agent generation failed")
		return nil, err
	}

	count := prior + 1
	return &models.AgentResponse{
		Reply: strings.TrimSpace(resp.Content),
		Agent: models.AgentSimulation,
		Simulation: &models.SimulationState{
			QuestionCount: count,
			IsComplete:    count >= a.cfg.MaxQuestions,
		},
	}, nil
}

func (a *SimulationAgent) instruction(phase Phase, prior int, lang string) (string, error) {
	switch phase {
	case PhaseOpening:
		return a.cfg.Phases.Opening.Get(lang), nil
	case PhaseClosing:
		return a.cfg.Phases.Closing.Get(lang), nil
	}

	tmpl, ok := a.probing[lang]
	if !ok {
		tmpl, ok = a.probing["ko"]
	}
	if !ok {
		return "", goerr.New("no probing instruction configured")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Answered int }{Answered: prior}); err != nil {
		return "", goerr.Wrap(err, "failed to render probing instruction")
	}
	return buf.String(), nil
}
