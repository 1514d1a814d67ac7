package model

import (
	"context"
	"log/slog"

	"github.com/sarchlab/cosimcore/status"
)

// Custom slog levels for tracing, grounded on core/util.go's
// LevelTrace/LevelWaveform pattern: LevelTrace sits just above Info for
// general setup tracing, LevelStep is the coupling-step analogue of the
// teacher's LevelWaveform.
const (
	LevelTrace slog.Level = slog.LevelInfo + 1
	LevelStep  slog.Level = slog.LevelInfo + 2
)

// EnableStepTraceLog gates the per-coupling-step trace log emitted by
// Run. Off by default, matching the teacher's own EnableWaveformLog
// performance note: a LevelStep line per coupling step is useful
// for debugging but too costly to leave on for a real run.
var EnableStepTraceLog = false

func logTrace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

func logStep(msg string, args ...any) {
	if !EnableStepTraceLog {
		return
	}
	slog.Log(context.Background(), LevelStep, msg, args...)
}

// logWarning emits a §7 soft-warning Result through slog.Warn with its
// Kind attached as a structured field, the way the teacher's PEStateLog
// attaches structured identity fields to every log line.
func logWarning(r status.Result) {
	slog.Warn(r.Message, slog.String("kind", r.Kind.String()))
}
