package agent

import (
	"reflect"
	"testing"

	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
)

func TestConversationTurns(t *testing.T) {
	tests := []struct {
		name    string
		history []models.HistoryEntry
		window  int
		want    []llm.Message
	}{
		{
			name: "no history",
			want: []llm.Message{{Role: llm.RoleUser, Content: "now"}},
		},
		{
			name: "leading assistant dropped",
			history: []models.HistoryEntry{
				{Role: models.RoleAssistant, Content: "welcome"},
				{Role: models.RoleUser, Content: "hi"},
				{Role: models.RoleAssistant, Content: "hello"},
			},
			window: 10,
			want: []llm.Message{
				{Role: llm.RoleUser, Content: "hi"},
				{Role: llm.RoleAssistant, Content: "hello"},
				{Role: llm.RoleUser, Content: "now"},
			},
		},
		{
			name: "same role merged and blanks skipped",
			history: []models.HistoryEntry{
				{Role: models.RoleUser, Content: "a"},
				{Role: models.RoleUser, Content: "  "},
				{Role: models.RoleUser, Content: "b"},
			},
			window: 10,
			want:   []llm.Message{{Role: llm.RoleUser, Content: "a\n\nb\n\nnow"}},
		},
		{
			name: "zero window ignores history",
			history: []models.HistoryEntry{
				{Role: models.RoleUser, Content: "a"},
				{Role: models.RoleAssistant, Content: "b"},
			},
			window: 0,
			want:   []llm.Message{{Role: llm.RoleUser, Content: "now"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conversationTurns(tt.history, tt.window, "now")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
