package config

import (
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

//go:embed agents.yaml
var defaultAgentsConfig []byte

// Profile names that must be present in the agents section.
const (
	ProfileInterview  = "interview"
	ProfileProject    = "project"
	ProfileCareer     = "career"
	ProfileGeneral    = "general"
	ProfileSimulation = "simulation"
	ProfileRAG        = "rag"
)

var requiredProfiles = []string{
	ProfileInterview, ProfileProject, ProfileCareer, ProfileGeneral, ProfileSimulation, ProfileRAG,
}

// Localized maps a language tag to text.
type Localized map[string]string

type ModelParams struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type RouterConfig struct {
	ModelParams `yaml:",inline"`
	Prompt      string `yaml:"prompt"`
}

type AgentProfile struct {
	ModelParams `yaml:",inline"`
	Documents   []string  `yaml:"documents"`
	Prompts     Localized `yaml:"prompts"`
}

type FollowUpRule struct {
	Keyword   string   `yaml:"keyword"`
	Questions []string `yaml:"questions"`
}

type Link struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

type ResourceRule struct {
	Keywords []string `yaml:"keywords"`
	Links    []Link   `yaml:"links"`
}

type SimulationPhases struct {
	Opening Localized `yaml:"opening"`
	Probing Localized `yaml:"probing"`
	Closing Localized `yaml:"closing"`
}

type SimulationConfig struct {
	MaxQuestions int              `yaml:"max_questions"`
	HistoryLimit int              `yaml:"history_limit"`
	Phases       SimulationPhases `yaml:"phases"`
	Completed    Localized        `yaml:"completed"`

	historyDerived bool
}

// SetMaxQuestions changes the question ceiling. A history limit that was not
// configured explicitly follows the new ceiling.
func (c *SimulationConfig) SetMaxQuestions(n int) {
	c.MaxQuestions = n
	if c.historyDerived {
		c.HistoryLimit = 4 * n
	}
}

type RAGConfig struct {
	NoResults Localized `yaml:"no_results"`
}

type AgentsConfig struct {
	EnglishInstruction string                  `yaml:"english_instruction"`
	Router             RouterConfig            `yaml:"router"`
	Agents             map[string]AgentProfile `yaml:"agents"`
	RAG                RAGConfig               `yaml:"rag"`
	Simulation         SimulationConfig        `yaml:"simulation"`
	FollowUps          []FollowUpRule          `yaml:"follow_ups"`
	DefaultFollowUps   []string                `yaml:"default_follow_ups"`
	Resources          []ResourceRule          `yaml:"resources"`
}

// LoadAgentsConfig reads AGENTS_CONFIG_PATH, falling back to the built-in profiles.
func LoadAgentsConfig() (*AgentsConfig, error) {
	path := os.Getenv("AGENTS_CONFIG_PATH")
	if path == "" {
		return DefaultAgentsConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read agents config", goerr.V("path", path))
	}

	return ParseAgentsConfig(data)
}

func ParseAgentsConfig(data []byte) (*AgentsConfig, error) {
	var cfg AgentsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse agents config")
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *AgentsConfig) {
	if cfg.Router.MaxTokens == 0 {
		cfg.Router.MaxTokens = 100
	}
	if cfg.EnglishInstruction == "" {
		cfg.EnglishInstruction = "Respond in English."
	}
	if cfg.Simulation.MaxQuestions == 0 {
		cfg.Simulation.MaxQuestions = 5
	}
	if cfg.Simulation.HistoryLimit == 0 {
		cfg.Simulation.HistoryLimit = 4 * cfg.Simulation.MaxQuestions
		cfg.Simulation.historyDerived = true
	}
	for name, profile := range cfg.Agents {
		if profile.MaxTokens == 0 {
			profile.MaxTokens = 1000
			cfg.Agents[name] = profile
		}
	}
}

func (c *AgentsConfig) Validate() error {
	if c.Router.Prompt == "" {
		return goerr.New("router prompt is required")
	}

	for _, name := range requiredProfiles {
		profile, ok := c.Agents[name]
		if !ok {
			return goerr.New("agent profile is missing", goerr.V("profile", name))
		}
		if profile.Prompts["ko"] == "" {
			return goerr.New("agent profile needs a ko prompt", goerr.V("profile", name))
		}
		if profile.Temperature < 0 || profile.Temperature > 2 {
			return goerr.New("temperature out of range", goerr.V("profile", name), goerr.V("temperature", profile.Temperature))
		}
	}

	if c.Simulation.MaxQuestions < 1 {
		return goerr.New("simulation max_questions must be positive")
	}

	templates := map[string]string{
		"simulation.probing.ko": c.Simulation.Phases.Probing["ko"],
		"simulation.probing.en": c.Simulation.Phases.Probing["en"],
		"rag.ko":                c.Agents[ProfileRAG].Prompts["ko"],
		"rag.en":                c.Agents[ProfileRAG].Prompts["en"],
	}
	for name, text := range templates {
		if _, err := template.New(name).Parse(text); err != nil {
			return goerr.Wrap(err, "invalid prompt template", goerr.V("template", name))
		}
	}

	for i, rule := range c.FollowUps {
		if rule.Keyword == "" || len(rule.Questions) == 0 {
			return goerr.New("follow-up rule needs a keyword and questions", goerr.V("index", i))
		}
	}
	for i, rule := range c.Resources {
		if len(rule.Keywords) == 0 || len(rule.Links) == 0 {
			return goerr.New("resource rule needs keywords and links", goerr.V("index", i))
		}
	}

	return nil
}

// Profile returns the named agent profile; it panics on an unknown name since
// Validate guarantees the required ones exist.
func (c *AgentsConfig) Profile(name string) AgentProfile {
	profile, ok := c.Agents[name]
	if !ok {
		panic(fmt.Sprintf("unknown agent profile %q", name))
	}
	return profile
}

// Prompt returns the prompt for lang. A profile without an English prompt gets
// the Korean one plus the English instruction.
func (p AgentProfile) Prompt(lang string, englishInstruction string) string {
	if prompt, ok := p.Prompts[lang]; ok && prompt != "" {
		return prompt
	}
	if lang == "en" {
		return p.Prompts["ko"] + "\n\n" + englishInstruction
	}
	return p.Prompts["ko"]
}

// Get returns the text for lang, or the Korean text when lang is missing.
func (l Localized) Get(lang string) string {
	if text, ok := l[lang]; ok && text != "" {
		return text
	}
	return l["ko"]
}

// DefaultAgentsConfig parses the built-in profiles.
func DefaultAgentsConfig() (*AgentsConfig, error) {
	return ParseAgentsConfig(defaultAgentsConfig)
}
