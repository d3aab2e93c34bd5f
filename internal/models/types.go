package models

import "time"

type Intent string

const (
	IntentInterview Intent = "interview"
	IntentProject   Intent = "project"
	IntentCareer    Intent = "career"
	IntentGeneral   Intent = "general"
)

// AgentTag names the responder that produced a reply.
type AgentTag string

const (
	AgentInterview  AgentTag = "interview"
	AgentProject    AgentTag = "project"
	AgentCareer     AgentTag = "career"
	AgentGeneral    AgentTag = "general"
	AgentRAG        AgentTag = "rag"
	AgentSimulation AgentTag = "simulation"
)

type Mode string

const (
	ModeDefault    Mode = "default"
	ModeRAG        Mode = "rag"
	ModeSearch     Mode = "search"
	ModeSimulation Mode = "simulation"
)

type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Document is one entry of the knowledge base.
type Document struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Body     string   `json:"content" yaml:"content"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

type DocumentSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
}

type RetrievalResult struct {
	DocumentID string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"content"`
	Relevance  int    `json:"relevance"`
}

type Source struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Relevance int    `json:"relevance"`
}

type Resource struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	SubTopic   *string `json:"subTopic"`
	// Fallback is set when the classifier output could not be used.
	Fallback bool `json:"-"`
}

type SimulationState struct {
	QuestionCount int  `json:"questionCount"`
	IsComplete    bool `json:"isComplete"`
}

// HistoryEntry is one turn of the caller-owned conversation.
type HistoryEntry struct {
	Role    Role     `json:"role"`
	Content string   `json:"content"`
	Agent   AgentTag `json:"agent,omitempty"`
}

// AgentResponse is what every responder produces before the envelope is built.
type AgentResponse struct {
	Reply      string
	Agent      AgentTag
	FollowUp   []string
	Resources  []Resource
	Sources    []Source
	Simulation *SimulationState
}

type ChatRequest struct {
	Message  string         `json:"message"`
	History  []HistoryEntry `json:"history,omitempty"`
	Context  map[string]any `json:"context,omitempty"`
	Mode     Mode           `json:"mode,omitempty"`
	Language Language       `json:"language,omitempty"`
}

func (r *ChatRequest) SetDefaults() {
	if r.Mode == "" {
		r.Mode = ModeDefault
	}
	if r.Language == "" {
		r.Language = LanguageKorean
	}
}

type ChatResponse struct {
	Reply           string           `json:"reply"`
	Agent           AgentTag         `json:"agent"`
	Routing         *Classification  `json:"routing,omitempty"`
	Sources         []Source         `json:"sources"`
	FollowUp        []string         `json:"followUp"`
	Resources       []Resource       `json:"resources"`
	Action          *string          `json:"action"`
	Timestamp       string           `json:"timestamp"`
	SimulationState *SimulationState `json:"simulationState,omitempty"`
}

type SearchResponse struct {
	Documents []RetrievalResult `json:"documents"`
	Query     string            `json:"query"`
}

type EventType string

const (
	EventTypeAgentResponse EventType = "agent_response"
)

type EventAgent struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version string `json:"version"`
}

type Interaction struct {
	UserQuery string `json:"user_query"`
	Context   string `json:"context"`
	Answer    string `json:"answer"`
}

// InteractionEvent is published for offline evaluation of answered requests.
type InteractionEvent struct {
	EventID     string      `json:"event_id"`
	EventType   EventType   `json:"event_type"`
	Agent       EventAgent  `json:"agent"`
	Interaction Interaction `json:"interaction"`
	CreatedAt   time.Time   `json:"created_at"`
}
