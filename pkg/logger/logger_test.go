package logger_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/pkg/logger"
)

func TestNewLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			for _, format := range []string{"json", "pretty"} {
				if got := logger.New(tt.level, format).GetLevel(); got != tt.want {
					t.Errorf("New(%q, %q) level = %s, want %s", tt.level, format, got, tt.want)
				}
			}
		})
	}
}
