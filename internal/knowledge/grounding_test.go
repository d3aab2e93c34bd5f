package knowledge_test

import (
	"testing"

	"github.com/Reason-jin/yj-portfolio-site/internal/knowledge"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/m-mizutani/gt"
)

func TestFormatGrounding(t *testing.T) {
	docs := []models.Document{
		{ID: "a", Title: "First", Body: "\nalpha body\n"},
		{ID: "b", Title: "Second", Body: "beta body"},
	}

	gt.Equal(t, knowledge.FormatGrounding(docs), "[First]\nalpha body\n\n---\n\n[Second]\nbeta body")
	gt.Equal(t, knowledge.FormatGrounding(nil), "")
}

func TestStore_Select(t *testing.T) {
	store, err := knowledge.LoadStore("")
	gt.NoError(t, err)

	docs := store.Select([]string{"interview_guide", "missing", "resume"})
	gt.A(t, docs).Length(2)
	gt.Equal(t, docs[0].ID, "interview_guide")
	gt.Equal(t, docs[1].ID, "resume")
}
