package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	imberrors "github.com/skylearn/imbalance/pkg/errors"
)

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := ToLogLevel(tt.level); got != tt.want {
				t.Errorf("ToLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestToLogLevelPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown level")
		}
	}()
	ToLogLevel("verbose")
}

func TestWarningSinkEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	InstallWarningSink(logger)
	defer imberrors.SetZerologWarnFunc(nil)

	imberrors.Warn(imberrors.NewConvergenceWarning("LogisticRegression", 1000, ""))

	out := buf.String()
	if !strings.Contains(out, `"algorithm":"LogisticRegression"`) {
		t.Errorf("expected structured algorithm field, got %s", out)
	}
	if !strings.Contains(out, `"iterations":1000`) {
		t.Errorf("expected structured iterations field, got %s", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("expected warn level, got %s", out)
	}
}
