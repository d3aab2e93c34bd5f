package orchestrator

//go:generate mockgen -source=orchestrator.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Reason-jin/yj-portfolio-site/internal/agent"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/metrics"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/Reason-jin/yj-portfolio-site/internal/retrieval"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
	eventAgentName  = "portfolio-assistant"
	eventVersion    = "1.0.0"

	contextFlowKey    = "currentFlow"
	simulationFlow    = "simulation"
	searchTopK        = retrieval.MaxTopK
	statusOK          = "ok"
	statusError       = "error"
	statusRejected    = "rejected"
	unknownAgentTag   = "none"
	rejectedModeLabel = "invalid"
)

var (
	ErrEmptyMessage    = errors.New("message is required")
	ErrInvalidMode     = errors.New("mode must be one of default, rag, search, simulation")
	ErrInvalidLanguage = errors.New("language must be ko or en")
)

// IsValidation reports whether err was caused by the request itself.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyMessage) || errors.Is(err, ErrInvalidMode) || errors.Is(err, ErrInvalidLanguage)
}

// IntentRouter classifies a message; it must not fail.
type IntentRouter interface {
	Classify(ctx context.Context, message string) models.Classification
}

// Retriever ranks knowledge documents for a query.
type Retriever interface {
	Search(query string, topK int) []models.RetrievalResult
}

// RAGResponder answers from retrieved documents.
type RAGResponder interface {
	Answer(ctx context.Context, query string, language models.Language) (*models.AgentResponse, error)
}

// Agent answers one topic.
type Agent interface {
	Name() models.AgentTag
	Respond(ctx context.Context, in agent.Input) (*models.AgentResponse, error)
}

// EventPublisher records answered interactions.
type EventPublisher interface {
	Publish(ctx context.Context, event models.InteractionEvent) error
}

type Agents struct {
	Interview  Agent
	Project    Agent
	Career     Agent
	General    Agent
	Simulation Agent
}

// Result holds exactly one of Chat or Search.
type Result struct {
	Chat   *models.ChatResponse
	Search *models.SearchResponse
}

// Body is the value to serialize for the caller.
func (r *Result) Body() any {
	if r.Search != nil {
		return r.Search
	}
	return r.Chat
}

type Orchestrator struct {
	router    IntentRouter
	retriever Retriever
	rag       RAGResponder
	agents    Agents
	publisher EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
	logger    *zerolog.Logger
}

// NewOrchestrator wires the request flow. publisher and m may be nil.
func NewOrchestrator(
	router IntentRouter,
	retriever Retriever,
	rag RAGResponder,
	agents Agents,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		router:    router,
		retriever: retriever,
		rag:       rag,
		agents:    agents,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
		logger:    logger,
	}
}

// Handle validates req and answers it in the requested mode. Only validation
// errors and generation failures are returned.
func (o *Orchestrator) Handle(ctx context.Context, req models.ChatRequest) (*Result, error) {
	start := o.now()
	req.SetDefaults()

	if err := validate(req); err != nil {
		o.metrics.ObserveRequest(rejectedModeLabel, unknownAgentTag, statusRejected, o.now().Sub(start))
		return nil, err
	}

	mode := effectiveMode(req)
	logger := o.logger.With().Str("mode", string(mode)).Str("language", string(req.Language)).Logger()

	if mode == models.ModeSearch {
		documents := o.retriever.Search(req.Message, searchTopK)
		if len(documents) == 0 {
			o.metrics.RetrievalEmpty()
		}
		logger.Info().Int("documents", len(documents)).Msg("search answered")
		o.metrics.ObserveRequest(string(mode), unknownAgentTag, statusOK, o.now().Sub(start))
		return &Result{Search: &models.SearchResponse{Documents: documents, Query: req.Message}}, nil
	}

	resp, routing, err := o.dispatch(ctx, mode, req)
	if err != nil {
		kind := llm.KindOf(err)
		if llm.IsGenerationError(err) {
			o.metrics.GenerationError(string(kind))
		}
		logger.Error().Err(err).Str("error_kind", string(kind)).Msg("request failed")
		o.metrics.ObserveRequest(string(mode), unknownAgentTag, statusError, o.now().Sub(start))
		return nil, err
	}

	if resp.Agent == models.AgentRAG && len(resp.Sources) == 0 {
		o.metrics.RetrievalEmpty()
	}

	envelope := o.envelope(resp, routing)
	o.publish(ctx, req, resp)

	logger.Info().
		Str("agent", string(resp.Agent)).
		Int("sources", len(envelope.Sources)).
		Dur("elapsed", o.now().Sub(start)).
		Msg("request answered")
	o.metrics.ObserveRequest(string(mode), string(resp.Agent), statusOK, o.now().Sub(start))

	return &Result{Chat: envelope}, nil
}

func (o *Orchestrator) dispatch(ctx context.Context, mode models.Mode, req models.ChatRequest) (*models.AgentResponse, *models.Classification, error) {
	in := agent.Input{
		Message:  req.Message,
		History:  req.History,
		Context:  req.Context,
		Language: req.Language,
	}

	switch mode {
	case models.ModeRAG:
		resp, err := o.rag.Answer(ctx, req.Message, req.Language)
		return resp, nil, err
	case models.ModeSimulation:
		resp, err := o.agents.Simulation.Respond(ctx, in)
		return resp, nil, err
	}

	classification := o.router.Classify(ctx, req.Message)
	if classification.Fallback {
		o.metrics.RouterFallback()
	}

	resp, err := o.agentFor(classification.Intent).Respond(ctx, in)
	return resp, &classification, err
}

func (o *Orchestrator) agentFor(intent models.Intent) Agent {
	switch intent {
	case models.IntentInterview:
		return o.agents.Interview
	case models.IntentProject:
		return o.agents.Project
	case models.IntentCareer:
		return o.agents.Career
	default:
		return o.agents.General
	}
}

func (o *Orchestrator) envelope(resp *models.AgentResponse, routing *models.Classification) *models.ChatResponse {
	out := &models.ChatResponse{
		Reply:           resp.Reply,
		Agent:           resp.Agent,
		Routing:         routing,
		Sources:         resp.Sources,
		FollowUp:        resp.FollowUp,
		Resources:       resp.Resources,
		Action:          nil,
		Timestamp:       o.now().UTC().Format(timestampLayout),
		SimulationState: resp.Simulation,
	}

	if out.Sources == nil {
		out.Sources = []models.Source{}
	}
	if out.FollowUp == nil {
		out.FollowUp = []string{}
	}
	if out.Resources == nil {
		out.Resources = []models.Resource{}
	}

	return out
}

func (o *Orchestrator) publish(ctx context.Context, req models.ChatRequest, resp *models.AgentResponse) {
	if o.publisher == nil {
		return
	}

	titles := make([]string, 0, len(resp.Sources))
	for _, s := range resp.Sources {
		titles = append(titles, s.Title)
	}

	event := models.InteractionEvent{
		EventID:   uuid.NewString(),
		EventType: models.EventTypeAgentResponse,
		Agent: models.EventAgent{
			Name:    eventAgentName,
			Type:    string(resp.Agent),
			Version: eventVersion,
		},
		Interaction: models.Interaction{
			UserQuery: req.Message,
			Context:   strings.Join(titles, "\n"),
			Answer:    resp.Reply,
		},
		CreatedAt: o.now().UTC(),
	}

	// the answer is already produced; publishing must not fail the request
	if err := o.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		o.logger.Warn().Err(err).Str("event_id", event.EventID).Msg("failed to publish interaction")
	}
}

func validate(req models.ChatRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return ErrEmptyMessage
	}

	switch req.Mode {
	case models.ModeDefault, models.ModeRAG, models.ModeSearch, models.ModeSimulation:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidMode, req.Mode)
	}

	switch req.Language {
	case models.LanguageKorean, models.LanguageEnglish:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLanguage, req.Language)
	}

	return nil
}

// effectiveMode also honours the chat widget's flow marker for simulations.
func effectiveMode(req models.ChatRequest) models.Mode {
	if req.Mode == models.ModeDefault {
		if flow, ok := req.Context[contextFlowKey].(string); ok && flow == simulationFlow {
			return models.ModeSimulation
		}
	}
	return req.Mode
}
