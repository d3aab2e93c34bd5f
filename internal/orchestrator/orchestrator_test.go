package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Reason-jin/yj-portfolio-site/internal/agent"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/metrics"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/Reason-jin/yj-portfolio-site/internal/orchestrator/mocks"
	"github.com/m-mizutani/gt"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

type fixture struct {
	router     *mocks.MockIntentRouter
	retriever  *mocks.MockRetriever
	rag        *mocks.MockRAGResponder
	interview  *mocks.MockAgent
	project    *mocks.MockAgent
	career     *mocks.MockAgent
	general    *mocks.MockAgent
	simulation *mocks.MockAgent
	publisher  *mocks.MockEventPublisher
	metrics    *metrics.Metrics
	orch       *Orchestrator
}

var fixedNow = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		router:     mocks.NewMockIntentRouter(ctrl),
		retriever:  mocks.NewMockRetriever(ctrl),
		rag:        mocks.NewMockRAGResponder(ctrl),
		interview:  mocks.NewMockAgent(ctrl),
		project:    mocks.NewMockAgent(ctrl),
		career:     mocks.NewMockAgent(ctrl),
		general:    mocks.NewMockAgent(ctrl),
		simulation: mocks.NewMockAgent(ctrl),
		publisher:  mocks.NewMockEventPublisher(ctrl),
		metrics:    metrics.New(),
	}

	f.orch = NewOrchestrator(
		f.router,
		f.retriever,
		f.rag,
		Agents{
			Interview:  f.interview,
			Project:    f.project,
			Career:     f.career,
			General:    f.general,
			Simulation: f.simulation,
		},
		f.publisher,
		f.metrics,
		testLogger(),
	)
	f.orch.now = func() time.Time { return fixedNow }
	return f
}

func counterValue(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	gt.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestHandle_Validation(t *testing.T) {
	tests := []struct {
		name      string
		req       models.ChatRequest
		expectErr error
	}{
		{name: "empty message", req: models.ChatRequest{Message: ""}, expectErr: ErrEmptyMessage},
		{name: "whitespace message", req: models.ChatRequest{Message: "  \n\t "}, expectErr: ErrEmptyMessage},
		{name: "unknown mode", req: models.ChatRequest{Message: "hi", Mode: "chat"}, expectErr: ErrInvalidMode},
		{name: "unknown language", req: models.ChatRequest{Message: "hi", Language: "ja"}, expectErr: ErrInvalidLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no EXPECT calls: any downstream invocation fails the test
			f := newFixture(t)

			result, err := f.orch.Handle(context.Background(), tt.req)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, tt.expectErr))
			gt.True(t, IsValidation(err))
			gt.V(t, result).Nil()
		})
	}
}

func TestHandle_RejectedModesShareOneSeries(t *testing.T) {
	f := newFixture(t)

	for _, mode := range []models.Mode{"chat", "admin", "x1", "x2", "x3"} {
		_, err := f.orch.Handle(context.Background(), models.ChatRequest{Message: "hi", Mode: mode})
		gt.True(t, errors.Is(err, ErrInvalidMode))
	}

	families, err := f.metrics.Registry().Gather()
	gt.NoError(t, err)

	var series int
	for _, mf := range families {
		if mf.GetName() != "portfolio_requests_total" {
			continue
		}
		series = len(mf.GetMetric())
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "mode" {
					gt.Equal(t, label.GetValue(), "invalid")
				}
			}
		}
	}
	gt.Equal(t, series, 1)
	gt.Equal(t, counterValue(t, f.metrics, "portfolio_requests_total"), 5.0)
}

func TestHandle_DefaultModeRoutesByIntent(t *testing.T) {
	tests := []struct {
		name   string
		intent models.Intent
		pick   func(f *fixture) *mocks.MockAgent
		tag    models.AgentTag
	}{
		{name: "interview", intent: models.IntentInterview, pick: func(f *fixture) *mocks.MockAgent { return f.interview }, tag: models.AgentInterview},
		{name: "project", intent: models.IntentProject, pick: func(f *fixture) *mocks.MockAgent { return f.project }, tag: models.AgentProject},
		{name: "career", intent: models.IntentCareer, pick: func(f *fixture) *mocks.MockAgent { return f.career }, tag: models.AgentCareer},
		{name: "general", intent: models.IntentGeneral, pick: func(f *fixture) *mocks.MockAgent { return f.general }, tag: models.AgentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			subTopic := "topic"
			classification := models.Classification{Intent: tt.intent, Confidence: 0.9, SubTopic: &subTopic}

			f.router.EXPECT().Classify(gomock.Any(), "질문").Return(classification)
			tt.pick(f).EXPECT().
				Respond(gomock.Any(), agent.Input{Message: "질문", Language: models.LanguageKorean}).
				Return(&models.AgentResponse{Reply: "답변", Agent: tt.tag}, nil)
			f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			result, err := f.orch.Handle(context.Background(), models.ChatRequest{Message: "질문"})
			gt.NoError(t, err)
			gt.V(t, result.Search).Nil()

			chat := result.Chat
			gt.Equal(t, chat.Reply, "답변")
			gt.Equal(t, chat.Agent, tt.tag)
			gt.V(t, chat.Routing).NotNil()
			gt.Equal(t, *chat.Routing, classification)
			gt.V(t, chat.Action).Nil()
			gt.Equal(t, chat.Timestamp, "2025-03-01T09:30:00.000Z")
			gt.V(t, chat.Sources).NotNil()
			gt.V(t, chat.FollowUp).NotNil()
			gt.V(t, chat.Resources).NotNil()
		})
	}
}

func TestHandle_FallbackClassificationUsesGeneral(t *testing.T) {
	f := newFixture(t)
	fallback := models.Classification{Intent: models.IntentGeneral, Confidence: 0.5, Fallback: true}

	f.router.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(fallback)
	f.general.EXPECT().Respond(gomock.Any(), gomock.Any()).
		Return(&models.AgentResponse{Reply: "안녕하세요", Agent: models.AgentGeneral}, nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.orch.Handle(context.Background(), models.ChatRequest{Message: "안녕"})
	gt.NoError(t, err)
	gt.Equal(t, result.Chat.Agent, models.AgentGeneral)
	gt.Equal(t, result.Chat.Routing.Confidence, 0.5)
	gt.V(t, result.Chat.Routing.SubTopic).Nil()
	gt.Equal(t, counterValue(t, f.metrics, "portfolio_router_fallbacks_total"), 1.0)
}

func TestHandle_UnknownIntentUsesGeneral(t *testing.T) {
	f := newFixture(t)

	f.router.EXPECT().Classify(gomock.Any(), gomock.Any()).
		Return(models.Classification{Intent: "weather", Confidence: 0.7})
	f.general.EXPECT().Respond(gomock.Any(), gomock.Any()).
		Return(&models.AgentResponse{Reply: "ok", Agent: models.AgentGeneral}, nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.orch.Handle(context.Background(), models.ChatRequest{Message: "hello"})
	gt.NoError(t, err)
	gt.Equal(t, result.Chat.Agent, models.AgentGeneral)
}

func TestHandle_SearchMode(t *testing.T) {
	f := newFixture(t)
	docs := []models.RetrievalResult{
		{DocumentID: "smartstock", Title: "SmartStock", Body: "...", Relevance: 10},
	}

	f.retriever.EXPECT().Search("SmartStock", 5).Return(docs)

	result, err := f.orch.Handle(context.Background(), models.ChatRequest{Message: "SmartStock", Mode: models.ModeSearch})
	gt.NoError(t, err)
	gt.V(t, result.Chat).Nil()
	gt.Equal(t, result.Search.Query, "SmartStock")
	gt.A(t, result.Search.Documents).Length(1)
	gt.Equal(t, result.Search.Documents[0].DocumentID, "smartstock")
	gt.Equal(t, result.Body(), any(result.Search))
}

func TestHandle_SearchModeEmptyCountsRetrievalMiss(t *testing.T) {
	f := newFixture(t)
	f.retriever.EXPECT().Search(gomock.Any(), gomock.Any()).Return([]models.RetrievalResult{})

	result, err := f.orch.Handle(context.Background(), models.ChatRequest{Message: "xyz", Mode: models.ModeSearch})
	gt.NoError(t, err)
	gt.A(t, result.Search.Documents).Length(0)
	gt.Equal(t, counterValue(t, f.metrics, "portfolio_retrieval_empty_total"), 1.0)
}

func TestHandle_RAGMode(t *testing.T) {
	f := newFixture(t)
	sources := []models.Source{{ID: "metraforge", Title: "MetraForge AI", Relevance: 12}}

	f.rag.EXPECT().Answer(gomock.Any(), "MetraForge AI 성과는?", models.LanguageKorean).
		Return(&models.AgentResponse{Reply: "PR-AUC 0.9667", Agent: models.AgentRAG, Sources: sources}, nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.InteractionEvent) error {
			gt.Equal(t, event.EventType, models.EventTypeAgentResponse)
			gt.Equal(t, event.Agent.Type, "rag")
			gt.Equal(t, event.Interaction.UserQuery, "MetraForge AI 성과는?")
			gt.Equal(t, event.Interaction.Context, "MetraForge AI")
			gt.Equal(t, event.Interaction.Answer, "PR-AUC 0.9667")
			gt.True(t, event.EventID != "")
			return nil
		})

	result, err := f.orch.Handle(context.Background(), models.ChatRequest{Message: "MetraForge AI 성과는?", Mode: models.ModeRAG})
	gt.NoError(t, err)
	gt.Equal(t, result.Chat.Agent, models.AgentRAG)
	gt.V(t, result.Chat.Routing).Nil()
	gt.Equal(t, result.Chat.Sources, sources)
}

func TestHandle_SimulationMode(t *testing.T) {
	tests := []struct {
		name string
		req  models.ChatRequest
	}{
		{
			name: "explicit mode",
			req:  models.ChatRequest{Message: "시작", Mode: models.ModeSimulation},
		},
		{
			name: "context flow marker",
			req:  models.ChatRequest{Message: "시작", Context: map[string]any{"currentFlow": "simulation"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			state := &models.SimulationState{QuestionCount: 1, IsComplete: false}

			f.simulation.EXPECT().Respond(gomock.Any(), gomock.Any()).
				Return(&models.AgentResponse{Reply: "자기소개 부탁드립니다.", Agent: models.AgentSimulation, Simulation: state}, nil)
			f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			result, err := f.orch.Handle(context.Background(), tt.req)
			gt.NoError(t, err)
			gt.Equal(t, result.Chat.Agent, models.AgentSimulation)
			gt.V(t, result.Chat.Routing).Nil()
			gt.Equal(t, result.Chat.SimulationState, state)
		})
	}
}

func TestHandle_GenerationErrorPassesThrough(t *testing.T) {
	f := newFixture(t)
	genErr := llm.NewError("openai", llm.KindRateLimited, errors.New("429"))

	f.router.EXPECT().Classify(gomock.Any(), gomock.Any()).
		Return(models.Classification{Intent: models.IntentProject, Confidence: 0.8})
	f.project.EXPECT().Respond(gomock.Any(), gomock.Any()).Return(nil, genErr)

	result, err := f.orch.Handle(context.Background(), models.ChatRequest{Message: "프로젝트"})
	gt.Error(t, err)
	gt.V(t, result).Nil()
	gt.Equal(t, llm.KindOf(err), llm.KindRateLimited)
	gt.True(t, !IsValidation(err))
	gt.Equal(t, counterValue(t, f.metrics, "portfolio_generation_errors_total"), 1.0)
}

func TestHandle_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)

	f.rag.EXPECT().Answer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.AgentResponse{Reply: "없음", Agent: models.AgentRAG, Sources: []models.Source{}}, nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	result, err := f.orch.Handle(context.Background(), models.ChatRequest{Message: "xyz", Mode: models.ModeRAG})
	gt.NoError(t, err)
	gt.Equal(t, result.Chat.Reply, "없음")
}

func TestHandle_NilPublisher(t *testing.T) {
	f := newFixture(t)
	f.orch.publisher = nil

	f.rag.EXPECT().Answer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.AgentResponse{Reply: "ok", Agent: models.AgentRAG}, nil)

	result, err := f.orch.Handle(context.Background(), models.ChatRequest{Message: "q", Mode: models.ModeRAG, Language: models.LanguageEnglish})
	gt.NoError(t, err)
	gt.V(t, result.Chat.Sources).NotNil()
	gt.A(t, result.Chat.Sources).Length(0)
}
