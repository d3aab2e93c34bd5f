package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/Reason-jin/yj-portfolio-site/internal/knowledge"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/Reason-jin/yj-portfolio-site/internal/retrieval"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	query := flag.String("q", "", "Search query")
	topK := flag.Int("k", retrieval.DefaultTopK, "Number of documents to return (max 5)")
	knowledgePath := flag.String("knowledge", "", "Optional knowledge YAML file (default: KNOWLEDGE_PATH or the built-in corpus)")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	_ = godotenv.Load()

	if *query == "" {
		log.Error().Msg("missing -q")
		flag.PrintDefaults()
		os.Exit(2)
	}

	path := *knowledgePath
	if path == "" {
		path = os.Getenv("KNOWLEDGE_PATH")
	}

	store, err := knowledge.LoadStore(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load knowledge base")
	}

	retriever := retrieval.NewRetriever(store)
	response := models.SearchResponse{
		Documents: retriever.Search(*query, *topK),
		Query:     *query,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(response); err != nil {
		log.Fatal().Err(err).Msg("Failed to write results")
	}

	log.Debug().Int("documents", len(response.Documents)).Str("query", *query).Msg("Search complete")
}
