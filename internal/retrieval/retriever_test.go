package retrieval

import (
	"strings"
	"testing"

	"github.com/Reason-jin/yj-portfolio-site/internal/knowledge"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/m-mizutani/gt"
)

type staticSource []models.Document

func (s staticSource) Documents() []models.Document { return s }

func newDefaultRetriever(t *testing.T) *Retriever {
	t.Helper()
	store, err := knowledge.LoadStore("")
	gt.NoError(t, err)
	return NewRetriever(store)
}

func TestScore(t *testing.T) {
	doc := models.Document{
		ID:       "alpha",
		Title:    "Alpha Project",
		Body:     "Alpha uses Kafka and Redis streams.",
		Keywords: []string{"Kafka", "Streams"},
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"no match", "nothing here", 0},
		{"keyword only", "kafka", 10 + 2},
		{"two keywords", "kafka streams", 10 + 10 + 2 + 2},
		{"title match", "tell me about alpha project", 20 + 2},
		{"short tokens ignored", "is it ok", 0},
		{"repeated token counts per token", "redis redis", 2 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := strings.ToLower(tt.query)
			got := Score(q, strings.Fields(q), doc)
			if got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearch_MetraForgeRanksFirst(t *testing.T) {
	r := newDefaultRetriever(t)

	results := r.Search("MetraForge AI 성과는?", DefaultTopK)
	gt.A(t, results).Longer(0)
	gt.Equal(t, results[0].DocumentID, "metraforge")
	gt.Equal(t, results[0].Relevance, 12)
}

func TestSearch_SmartStockRanksFirst(t *testing.T) {
	r := newDefaultRetriever(t)

	results := r.Search("SmartStock", MaxTopK)
	gt.A(t, results).Longer(0)
	gt.S(t, results[0].Title).Contains("SmartStock")
}

func TestSearch_Properties(t *testing.T) {
	r := newDefaultRetriever(t)

	queries := []string{
		"MetraForge AI 성과는?",
		"SmartStock 수요예측 LSTM",
		"면접 자기소개 강점",
		"이력서 경력",
		"YOLOv8 포즈 촬영",
		"아이토리 GPT DALL-E",
		"completely unrelated",
	}

	for _, q := range queries {
		for k := 1; k <= MaxTopK; k++ {
			results := r.Search(q, k)
			if len(results) > k {
				t.Errorf("Search(%q, %d) returned %d results", q, k, len(results))
			}
			for i, res := range results {
				if res.Relevance <= 0 {
					t.Errorf("Search(%q) returned non-positive score %d", q, res.Relevance)
				}
				if i > 0 && results[i-1].Relevance < res.Relevance {
					t.Errorf("Search(%q) not sorted at %d", q, i)
				}
			}

			again := r.Search(q, k)
			gt.Equal(t, again, results)
		}
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	r := newDefaultRetriever(t)

	for _, q := range []string{"", "   ", "\n\t"} {
		results := r.Search(q, DefaultTopK)
		if results == nil || len(results) != 0 {
			t.Errorf("Search(%q) = %v, want empty non-nil slice", q, results)
		}
	}
}

func TestSearch_TopKClamp(t *testing.T) {
	docs := staticSource{}
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		docs = append(docs, models.Document{ID: id, Title: id, Body: "shared body", Keywords: []string{"shared"}})
	}
	r := NewRetriever(docs)

	gt.A(t, r.Search("shared", 0)).Length(DefaultTopK)
	gt.A(t, r.Search("shared", -1)).Length(DefaultTopK)
	gt.A(t, r.Search("shared", 50)).Length(MaxTopK)
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	docs := staticSource{
		{ID: "first", Title: "First", Keywords: []string{"tie"}},
		{ID: "second", Title: "Second", Keywords: []string{"tie"}},
		{ID: "third", Title: "Third", Keywords: []string{"tie"}},
	}
	r := NewRetriever(docs)

	results := r.Search("tie", MaxTopK)
	gt.A(t, results).Length(3)
	gt.Equal(t, results[0].DocumentID, "first")
	gt.Equal(t, results[1].DocumentID, "second")
	gt.Equal(t, results[2].DocumentID, "third")
}

func TestScore_Monotonic(t *testing.T) {
	base := models.Document{ID: "x", Title: "X", Body: "inventory planning", Keywords: []string{"inventory"}}
	extended := base
	extended.Keywords = append([]string{}, base.Keywords...)
	extended.Keywords = append(extended.Keywords, "forecast")

	for _, q := range []string{"forecast", "inventory forecast", "forecast planning", "other"} {
		lq := strings.ToLower(q)
		before := Score(lq, strings.Fields(lq), base)
		after := Score(lq, strings.Fields(lq), extended)
		if after < before {
			t.Errorf("score decreased for %q: %d -> %d", q, before, after)
		}
	}
}
