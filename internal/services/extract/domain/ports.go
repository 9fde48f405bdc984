package domain

import (
	"context"
	"time"

	"taupe/internal/core/archive"
)

// RunnerPort runs one extraction over an opened archive
type RunnerPort interface {
	Run(ctx context.Context, a *archive.Archive) (Result, error)
}

// Recorder receives run metrics. metrics.Collector implements it
type Recorder interface {
	RecordRun(mode string, lines int)
	RecordRows(category string, n int)
	RecordFailure(reason string)
	RecordDuration(d time.Duration)
}

// NopRecorder discards everything
type NopRecorder struct{}

// RecordRun implements Recorder
func (NopRecorder) RecordRun(string, int) {}

// RecordRows implements Recorder
func (NopRecorder) RecordRows(string, int) {}

// RecordFailure implements Recorder
func (NopRecorder) RecordFailure(string) {}

// RecordDuration implements Recorder
func (NopRecorder) RecordDuration(time.Duration) {}
