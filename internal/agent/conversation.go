package agent

import (
	"strings"

	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
)

// conversationTurns turns the last window history entries plus message into
// chat turns that start with the user and alternate roles. Adjacent entries
// with the same role are joined. History order is kept as given.
func conversationTurns(history []models.HistoryEntry, window int, message string) []llm.Message {
	if window >= 0 && len(history) > window {
		history = history[len(history)-window:]
	}

	turns := make([]llm.Message, 0, len(history)+1)
	appendTurn := func(role llm.Role, content string) {
		if n := len(turns); n > 0 && turns[n-1].Role == role {
			turns[n-1].Content += "\n\n" + content
			return
		}
		turns = append(turns, llm.Message{Role: role, Content: content})
	}

	for _, entry := range history {
		content := strings.TrimSpace(entry.Content)
		if content == "" {
			continue
		}

		switch entry.Role {
		case models.RoleUser:
			appendTurn(llm.RoleUser, content)
		case models.RoleAssistant:
			if len(turns) == 0 {
				continue
			}
			appendTurn(llm.RoleAssistant, content)
		}
	}

	appendTurn(llm.RoleUser, message)
	return turns
}
