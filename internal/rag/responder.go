package rag

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/Reason-jin/yj-portfolio-site/internal/config"
	"github.com/Reason-jin/yj-portfolio-site/internal/knowledge"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/Reason-jin/yj-portfolio-site/internal/retrieval"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"
)

// Searcher ranks knowledge documents for a query.
type Searcher interface {
	Search(query string, topK int) []models.RetrievalResult
}

// Responder answers strictly from retrieved documents.
type Responder struct {
	searcher  Searcher
	llmClient llm.LLMClient
	profile   config.AgentProfile
	noResults config.Localized
	prompts   map[string]*template.Template
	topK      int
	logger    *zerolog.Logger
}

func NewResponder(searcher Searcher, llmClient llm.LLMClient, cfg *config.AgentsConfig, logger *zerolog.Logger) (*Responder, error) {
	profile := cfg.Profile(config.ProfileRAG)

	prompts := make(map[string]*template.Template, len(profile.Prompts))
	for lang, text := range profile.Prompts {
		tmpl, err := template.New("rag-" + lang).Parse(text)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse rag prompt", goerr.V("language", lang))
		}
		prompts[lang] = tmpl
	}

	return &Responder{
		searcher:  searcher,
		llmClient: llmClient,
		profile:   profile,
		noResults: cfg.RAG.NoResults,
		prompts:   prompts,
		topK:      retrieval.DefaultTopK,
		logger:    logger,
	}, nil
}

// Answer returns the fixed no-information reply, without calling the model,
// when nothing matches. Sources keep the retrieval ranking.
func (r *Responder) Answer(ctx context.Context, query string, language models.Language) (*models.AgentResponse, error) {
	results := r.searcher.Search(query, r.topK)
	if len(results) == 0 {
		r.logger.Info().Str("query", query).Msg("no documents matched, returning no-information reply")
		return &models.AgentResponse{
			Reply:   r.noResults.Get(string(language)),
			Agent:   models.AgentRAG,
			Sources: []models.Source{},
		}, nil
	}

	system, err := r.systemPrompt(results, string(language))
	if err != nil {
		return nil, err
	}

	resp, err := r.llmClient.InvokeModel(ctx, llm.UserPrompt(system, query, r.profile.MaxTokens, r.profile.Temperature))
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("error_kind", string(llm.KindOf(err))).
			Msg("rag generation failed")
		return nil, err
	}

	sources := make([]models.Source, 0, len(results))
	for _, res := range results {
		sources = append(sources, models.Source{
			ID:        res.DocumentID,
			Title:     res.Title,
			Relevance: res.Relevance,
		})
	}

	return &models.AgentResponse{
		Reply:   strings.TrimSpace(resp.Content),
		Agent:   models.AgentRAG,
		Sources: sources,
	}, nil
}

func (r *Responder) systemPrompt(results []models.RetrievalResult, lang string) (string, error) {
	docs := make([]models.Document, 0, len(results))
	for _, res := range results {
		docs = append(docs, models.Document{ID: res.DocumentID, Title: res.Title, Body: res.Body})
	}

	tmpl, ok := r.prompts[lang]
	if !ok {
		tmpl, ok = r.prompts["ko"]
	}
	if !ok {
		return "", goerr.New("no rag prompt configured")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Context string }{Context: knowledge.FormatGrounding(docs)}); err != nil {
		return "", goerr.Wrap(err, "failed to render rag prompt")
	}
	return buf.String(), nil
}
