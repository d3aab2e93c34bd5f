package knowledge

import (
	_ "embed"
	"os"
	"slices"
	"strings"

	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

//go:embed documents.yaml
var defaultCorpus []byte

type corpus struct {
	Documents []models.Document `yaml:"documents"`
}

// Store holds the knowledge documents. It is populated once and never mutated.
type Store struct {
	docs []models.Document
	byID map[string]int
}

func NewStore(docs []models.Document) (*Store, error) {
	s := &Store{
		docs: make([]models.Document, 0, len(docs)),
		byID: make(map[string]int, len(docs)),
	}

	for _, doc := range docs {
		if strings.TrimSpace(doc.ID) == "" {
			return nil, goerr.New("document id is required", goerr.V("title", doc.Title))
		}
		if _, exists := s.byID[doc.ID]; exists {
			return nil, goerr.New("duplicate document id", goerr.V("id", doc.ID))
		}
		if doc.Title == "" {
			return nil, goerr.New("document title is required", goerr.V("id", doc.ID))
		}

		doc.Keywords = slices.Clone(doc.Keywords)
		s.byID[doc.ID] = len(s.docs)
		s.docs = append(s.docs, doc)
	}

	return s, nil
}

// LoadStore reads the corpus from path, or the built-in corpus when path is empty.
func LoadStore(path string) (*Store, error) {
	data := defaultCorpus
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read knowledge file", goerr.V("path", path))
		}
		data = raw
	}

	return Parse(data)
}

func Parse(data []byte) (*Store, error) {
	var c corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, goerr.Wrap(err, "failed to parse knowledge corpus")
	}
	if len(c.Documents) == 0 {
		return nil, goerr.New("knowledge corpus has no documents")
	}

	return NewStore(c.Documents)
}

// GetDocument returns nil when id is unknown.
func (s *Store) GetDocument(id string) *models.Document {
	idx, ok := s.byID[id]
	if !ok {
		return nil
	}

	doc := cloneDocument(s.docs[idx])
	return &doc
}

func (s *Store) ListDocuments() []models.DocumentSummary {
	out := make([]models.DocumentSummary, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, models.DocumentSummary{
			ID:       doc.ID,
			Title:    doc.Title,
			Keywords: slices.Clone(doc.Keywords),
		})
	}

	return out
}

// Documents returns every document in insertion order.
func (s *Store) Documents() []models.Document {
	out := make([]models.Document, len(s.docs))
	for i, doc := range s.docs {
		out[i] = cloneDocument(doc)
	}
	return out
}

func cloneDocument(doc models.Document) models.Document {
	doc.Keywords = slices.Clone(doc.Keywords)
	return doc
}

func (s *Store) Len() int {
	return len(s.docs)
}
