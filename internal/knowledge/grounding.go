package knowledge

import (
	"strings"

	"github.com/Reason-jin/yj-portfolio-site/internal/models"
)

const groundingSeparator = "\n\n---\n\n"

// FormatGrounding renders documents as "[title]\nbody" blocks in the given order.
func FormatGrounding(docs []models.Document) string {
	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		blocks = append(blocks, "["+doc.Title+"]\n"+strings.TrimSpace(doc.Body))
	}
	return strings.Join(blocks, groundingSeparator)
}

// Select returns the documents with the given ids, skipping unknown ones.
func (s *Store) Select(ids []string) []models.Document {
	out := make([]models.Document, 0, len(ids))
	for _, id := range ids {
		if doc := s.GetDocument(id); doc != nil {
			out = append(out, *doc)
		}
	}
	return out
}
