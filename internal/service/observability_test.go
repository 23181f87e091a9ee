package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "submit-report",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"context": "menu"},
	})
	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=submit-report")
	assert.Contains(t, out, "duration_ms=12")
	assert.Contains(t, out, "context=menu")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x", Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestObserverConstructorsTolerateNil(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))

	var buf bytes.Buffer
	obs := NewSlogUseCaseObserver(slog.New(slog.NewJSONHandler(&buf, nil)))
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "map-points", Success: true})
	assert.Contains(t, buf.String(), `"use_case":"map-points"`)
}
