package logger

import (
	"bytes"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/rs/zerolog"
)

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			gt.Equal(t, logger.GetLevel(), tt.want)
		})
	}
}

func TestNewLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info")
	logger.Info().Str("agent", "rag").Msg("answered")

	gt.S(t, buf.String()).Contains(`"agent":"rag"`)
	gt.S(t, buf.String()).Contains(`"message":"answered"`)
	gt.S(t, buf.String()).Contains(`"caller"`)
}
