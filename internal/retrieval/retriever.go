package retrieval

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Reason-jin/yj-portfolio-site/internal/models"
)

const (
	DefaultTopK = 3
	MaxTopK     = 5

	keywordWeight = 10
	titleWeight   = 20
	tokenWeight   = 2

	minTokenLength = 3
)

// DocumentSource yields the documents to rank, in insertion order.
type DocumentSource interface {
	Documents() []models.Document
}

type Retriever struct {
	source DocumentSource
}

func NewRetriever(source DocumentSource) *Retriever {
	return &Retriever{source: source}
}

// Search ranks documents against query and returns at most topK hits with a positive score.
// topK <= 0 means DefaultTopK; values above MaxTopK are clamped.
func (r *Retriever) Search(query string, topK int) []models.RetrievalResult {
	results := []models.RetrievalResult{}

	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return results
	}

	switch {
	case topK <= 0:
		topK = DefaultTopK
	case topK > MaxTopK:
		topK = MaxTopK
	}

	tokens := strings.Fields(normalized)
	for _, doc := range r.source.Documents() {
		score := Score(normalized, tokens, doc)
		if score <= 0 {
			continue
		}
		results = append(results, models.RetrievalResult{
			DocumentID: doc.ID,
			Title:      doc.Title,
			Body:       doc.Body,
			Relevance:  score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	if len(results) > topK {
		results = results[:topK]
	}

	return results
}

// Score expects query already lower-cased and tokens split from it.
func Score(query string, tokens []string, doc models.Document) int {
	score := 0

	for _, keyword := range doc.Keywords {
		kw := strings.ToLower(keyword)
		if kw != "" && strings.Contains(query, kw) {
			score += keywordWeight
		}
	}

	if title := strings.ToLower(doc.Title); title != "" && strings.Contains(query, title) {
		score += titleWeight
	}

	body := strings.ToLower(doc.Body)
	for _, token := range tokens {
		// one point per matching token, not per occurrence
		if utf8.RuneCountInString(token) >= minTokenLength && strings.Contains(body, token) {
			score += tokenWeight
		}
	}

	return score
}
