package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Reason-jin/yj-portfolio-site/internal/agent"
	"github.com/Reason-jin/yj-portfolio-site/internal/config"
	"github.com/Reason-jin/yj-portfolio-site/internal/knowledge"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm/bedrock"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm/gemini"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm/gpt"
	"github.com/Reason-jin/yj-portfolio-site/internal/metrics"
	"github.com/Reason-jin/yj-portfolio-site/internal/orchestrator"
	"github.com/Reason-jin/yj-portfolio-site/internal/rag"
	"github.com/Reason-jin/yj-portfolio-site/internal/redis"
	"github.com/Reason-jin/yj-portfolio-site/internal/retrieval"
	"github.com/Reason-jin/yj-portfolio-site/internal/router"
	"github.com/Reason-jin/yj-portfolio-site/internal/stream"
	"github.com/rs/zerolog"
)

const (
	ProviderOpenAI  = "openai"
	ProviderBedrock = "bedrock"
	ProviderGemini  = "gemini"

	redisConnectRetries = 3
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	Provider          string
	OpenAIKey         string
	OpenAIModelID     string
	OpenAIMiniModelID string
	AWSRegion         string
	ClaudeModelID     string
	ClaudeMiniModelID string
	GeminiKey         string
	GeminiModelID     string
	GeminiMiniModelID string
	GenerationTimeout time.Duration

	KnowledgePath string

	RateLimitRequests int
	RateLimitPeriod   time.Duration

	RedisAddr         string
	RedisPassword     string
	InteractionStream string

	SimulationMaxQuestions int
	HistoryWindow          int
}

func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

type Dependencies struct {
	Store        *knowledge.Store
	Retriever    *retrieval.Retriever
	Orchestrator *orchestrator.Orchestrator
	Metrics      *metrics.Metrics
	Publisher    *stream.RedisPublisher
	Logger       *zerolog.Logger
}

// Close flushes queued interaction events.
func (d *Dependencies) Close() {
	if d.Publisher != nil {
		d.Publisher.Close()
	}
}

func LoadConfig() *Config {
	return &Config{
		Port:     getEnv("PORTFOLIO_API_PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "production"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		Provider:          getEnv("LLM_PROVIDER", ProviderOpenAI),
		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModelID:     getEnv("OPENAI_MODEL_ID", "gpt-4o-mini"),
		OpenAIMiniModelID: getEnv("OPENAI_MINI_MODEL_ID", "gpt-3.5-turbo"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:     getEnv("CLAUDE_MODEL_ID", ""),
		ClaudeMiniModelID: getEnv("CLAUDE_MINI_MODEL_ID", ""),
		GeminiKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:     getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		GeminiMiniModelID: getEnv("GEMINI_MINI_MODEL_ID", "gemini-2.5-flash-lite"),
		GenerationTimeout: getEnvDuration("GENERATION_TIMEOUT", llm.DefaultTimeout),

		KnowledgePath: getEnv("KNOWLEDGE_PATH", ""),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitPeriod:   getEnvDuration("RATE_LIMIT_PERIOD", time.Minute),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		InteractionStream: getEnv("INTERACTION_STREAM", stream.DefaultStream),

		SimulationMaxQuestions: getEnvInt("SIMULATION_MAX_QUESTIONS", 5),
		HistoryWindow:          getEnvInt("HISTORY_WINDOW", 10),
	}
}

// Wire creates the provider clients named by cfg and builds the service graph.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	mainClient, err := createLLMClient(ctx, cfg, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	miniClient, err := createLLMClient(ctx, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s mini client: %w", cfg.Provider, err)
	}

	logger.Info().Str("provider", cfg.Provider).Dur("timeout", cfg.GenerationTimeout).Msg("LLM clients initialized")

	return Build(ctx, cfg,
		llm.WithTimeout(mainClient, cfg.GenerationTimeout),
		llm.WithTimeout(miniClient, cfg.GenerationTimeout),
		logger,
	)
}

// Build wires the service graph on top of ready generation clients. The mini
// client serves the router and the general agent.
func Build(ctx context.Context, cfg *Config, mainClient llm.LLMClient, miniClient llm.LLMClient, logger *zerolog.Logger) (*Dependencies, error) {
	agentsConfig, err := config.LoadAgentsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load agents config: %w", err)
	}
	if cfg.SimulationMaxQuestions > 0 {
		agentsConfig.Simulation.SetMaxQuestions(cfg.SimulationMaxQuestions)
	}

	store, err := knowledge.LoadStore(cfg.KnowledgePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	logger.Info().Int("documents", store.Len()).Msg("Knowledge base loaded")

	retriever := retrieval.NewRetriever(store)
	intentRouter := router.NewRouter(miniClient, agentsConfig.Router, logger)

	opts := agent.Options{HistoryWindow: cfg.HistoryWindow}
	simulation, err := agent.NewSimulationAgent(agentsConfig, store, mainClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation agent: %w", err)
	}
	agents := orchestrator.Agents{
		Interview:  agent.NewInterviewAgent(agentsConfig, store, mainClient, opts, logger),
		Project:    agent.NewProjectAgent(agentsConfig, store, mainClient, opts, logger),
		Career:     agent.NewCareerAgent(agentsConfig, store, mainClient, opts, logger),
		General:    agent.NewGeneralAgent(agentsConfig, store, miniClient, opts, logger),
		Simulation: simulation,
	}

	responder, err := rag.NewResponder(retriever, mainClient, agentsConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create rag responder: %w", err)
	}

	m := metrics.New()

	deps := &Dependencies{
		Store:     store,
		Retriever: retriever,
		Metrics:   m,
		Logger:    logger,
	}

	// a nil *RedisPublisher must not reach the interface
	var publisher orchestrator.EventPublisher
	if cfg.RedisAddr != "" {
		client, err := redis.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, redisConnectRetries, logger)
		if err != nil {
			return nil, err
		}
		deps.Publisher = stream.NewRedisPublisher(client, cfg.InteractionStream, stream.DefaultBufferSize, logger)
		deps.Publisher.Start(ctx)
		publisher = deps.Publisher
		logger.Info().Str("stream", cfg.InteractionStream).Msg("Interaction publishing enabled")
	}

	deps.Orchestrator = orchestrator.NewOrchestrator(intentRouter, retriever, responder, agents, publisher, m, logger)

	return deps, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func createLLMClient(ctx context.Context, cfg *Config, mini bool) (llm.LLMClient, error) {
	switch cfg.Provider {
	case ProviderBedrock:
		modelID := cfg.ClaudeModelID
		if mini && cfg.ClaudeMiniModelID != "" {
			modelID = cfg.ClaudeMiniModelID
		}
		return bedrock.NewClient(ctx, cfg.AWSRegion, modelID)
	case ProviderGemini:
		modelID := cfg.GeminiModelID
		if mini {
			modelID = cfg.GeminiMiniModelID
		}
		return gemini.NewClient(ctx, cfg.GeminiKey, modelID)
	case ProviderOpenAI:
		modelID := cfg.OpenAIModelID
		if mini {
			modelID = cfg.OpenAIMiniModelID
		}
		return gpt.NewClient(cfg.OpenAIKey, modelID)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
