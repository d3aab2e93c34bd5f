package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm/llmtest"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
)

func TestPhaseFor(t *testing.T) {
	tests := []struct {
		prior int
		want  Phase
	}{
		{0, PhaseOpening},
		{1, PhaseProbing},
		{2, PhaseProbing},
		{3, PhaseProbing},
		{4, PhaseClosing},
		{5, PhaseComplete},
		{9, PhaseComplete},
	}

	for _, tt := range tests {
		if got := PhaseFor(tt.prior, 5); got != tt.want {
			t.Errorf("PhaseFor(%d, 5) = %s, want %s", tt.prior, got, tt.want)
		}
	}
}

func TestSimulationHistory_FiltersByAgentTag(t *testing.T) {
	history := []models.HistoryEntry{
		{Role: models.RoleUser, Content: "안녕"},
		{Role: models.RoleAssistant, Content: "반가워요", Agent: models.AgentGeneral},
		{Role: models.RoleUser, Content: "시작", Agent: models.AgentSimulation},
		{Role: models.RoleAssistant, Content: "자기소개해주세요", Agent: models.AgentSimulation},
	}

	sub := SimulationHistory(history)
	if len(sub) != 2 || sub[0].Content != "시작" || sub[1].Content != "자기소개해주세요" {
		t.Errorf("unexpected sub-history %+v", sub)
	}
	if countAssistantTurns(sub) != 1 {
		t.Errorf("expected 1 assistant turn, got %d", countAssistantTurns(sub))
	}
}

func TestSimulationAgent_FiveTurns(t *testing.T) {
	cfg, store := loadFixtures(t)
	mock := &llmtest.MockLLMClient{}
	a, err := NewSimulationAgent(cfg, store, mock, newTestLogger())
	if err != nil {
		t.Fatalf("NewSimulationAgent: %v", err)
	}

	// unrelated turns must not advance the interview
	history := []models.HistoryEntry{
		{Role: models.RoleUser, Content: "안녕하세요"},
		{Role: models.RoleAssistant, Content: "무엇을 도와드릴까요?", Agent: models.AgentGeneral},
	}

	wantInstruction := []string{
		"면접 시작",
		"1번째 질문 완료",
		"2번째 질문 완료",
		"3번째 질문 완료",
		"마무리 단계",
	}

	for turn := 1; turn <= 5; turn++ {
		message := fmt.Sprintf("답변 %d", turn)
		mock.ResponseToReturn = fmt.Sprintf("질문 %d", turn)

		resp, err := a.Respond(context.Background(), Input{Message: message, History: history, Language: models.LanguageKorean})
		if err != nil {
			t.Fatalf("turn %d: unexpected error: %v", turn, err)
		}

		if resp.Agent != models.AgentSimulation || resp.Simulation == nil {
			t.Fatalf("turn %d: expected simulation state, got %+v", turn, resp)
		}
		if resp.Simulation.QuestionCount != turn {
			t.Errorf("turn %d: questionCount = %d", turn, resp.Simulation.QuestionCount)
		}
		if resp.Simulation.IsComplete != (turn == 5) {
			t.Errorf("turn %d: isComplete = %v", turn, resp.Simulation.IsComplete)
		}
		if !strings.Contains(mock.LastRequest.System, wantInstruction[turn-1]) {
			t.Errorf("turn %d: expected instruction %q in system prompt", turn, wantInstruction[turn-1])
		}
		if mock.LastRequest.Temperature != 0.7 || mock.LastRequest.MaxTokens != 800 {
			t.Errorf("turn %d: unexpected params %+v", turn, mock.LastRequest)
		}

		// only simulation turns are replayed
		for _, m := range mock.LastRequest.Messages {
			if m.Content == "무엇을 도와드릴까요?" {
				t.Errorf("turn %d: non-simulation history leaked into prompt", turn)
			}
		}

		history = append(history,
			models.HistoryEntry{Role: models.RoleUser, Content: message, Agent: models.AgentSimulation},
			models.HistoryEntry{Role: models.RoleAssistant, Content: resp.Reply, Agent: models.AgentSimulation},
		)
	}

	if mock.CallCount() != 5 {
		t.Errorf("expected 5 generation calls, got %d", mock.CallCount())
	}
}

func TestSimulationAgent_CompleteStateSkipsGeneration(t *testing.T) {
	cfg, store := loadFixtures(t)
	mock := &llmtest.MockLLMClient{ResponseToReturn: "unused"}
	a, err := NewSimulationAgent(cfg, store, mock, newTestLogger())
	if err != nil {
		t.Fatalf("NewSimulationAgent: %v", err)
	}

	var history []models.HistoryEntry
	for i := 0; i < 5; i++ {
		history = append(history,
			models.HistoryEntry{Role: models.RoleUser, Content: "a", Agent: models.AgentSimulation},
			models.HistoryEntry{Role: models.RoleAssistant, Content: "q", Agent: models.AgentSimulation},
		)
	}

	resp, err := a.Respond(context.Background(), Input{Message: "또 질문해주세요", History: history, Language: models.LanguageEnglish})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.WasCalled {
		t.Error("generation must not be called after the simulation is complete")
	}
	if resp.Simulation.QuestionCount != 5 || !resp.Simulation.IsComplete {
		t.Errorf("unexpected state %+v", resp.Simulation)
	}
	if !strings.Contains(resp.Reply, "complete") {
		t.Errorf("expected English completion note, got %q", resp.Reply)
	}
}

func TestSimulationAgent_EnglishProbing(t *testing.T) {
	cfg, store := loadFixtures(t)
	mock := &llmtest.MockLLMClient{ResponseToReturn: "next"}
	a, err := NewSimulationAgent(cfg, store, mock, newTestLogger())
	if err != nil {
		t.Fatalf("NewSimulationAgent: %v", err)
	}

	history := []models.HistoryEntry{
		{Role: models.RoleUser, Content: "start", Agent: models.AgentSimulation},
		{Role: models.RoleAssistant, Content: "q1", Agent: models.AgentSimulation},
		{Role: models.RoleUser, Content: "a1", Agent: models.AgentSimulation},
		{Role: models.RoleAssistant, Content: "q2", Agent: models.AgentSimulation},
	}

	if _, err := a.Respond(context.Background(), Input{Message: "a2", History: history, Language: models.LanguageEnglish}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	system := mock.LastRequest.System
	if !strings.Contains(system, "question 2 answered") || !strings.Contains(system, "Respond in English.") {
		t.Errorf("unexpected system prompt %q", system)
	}
	if len(mock.LastRequest.Messages) != 5 {
		t.Errorf("expected 5 replayed turns, got %d", len(mock.LastRequest.Messages))
	}
}

func TestSimulationAgent_PropagatesGenerationError(t *testing.T) {
	cfg, store := loadFixtures(t)
	mock := &llmtest.MockLLMClient{ErrorToReturn: llm.NewError("test", llm.KindNetwork, errors.New("timeout"))}
	a, err := NewSimulationAgent(cfg, store, mock, newTestLogger())
	if err != nil {
		t.Fatalf("NewSimulationAgent: %v", err)
	}

	_, err = a.Respond(context.Background(), Input{Message: "시작", Language: models.LanguageKorean})
	if llm.KindOf(err) != llm.KindNetwork {
		t.Errorf("expected network error, got %v", err)
	}
}
