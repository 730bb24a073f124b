package recorder

import (
	"context"
	"time"
)

// Recorder captures microphone audio.
type Recorder interface {
	// Record captures until ctx is cancelled, then writes a 16-bit WAV to
	// path and returns the recorded duration.
	Record(ctx context.Context, path string) (time.Duration, error)
	// Probe reads a single buffer and returns its level in [1, 100].
	Probe(ctx context.Context) (int, error)
}

// source is an open input stream delivering interleaved int16 frames.
type source interface {
	Read() ([]int16, error)
	Close() error
}
