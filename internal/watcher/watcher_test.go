package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/minutes/internal/logger"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"recordings/20240305_1407.wav", true},
		{"a.WAV", true},
		{"call.m4a", true},
		{"call.mp3", true},
		{"call.flac", true},
		{"call.ogg", true},
		{"notes.txt", false},
		{"video.mp4", false},
		{".wav.tmp", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsAudioFile(tt.path); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherHandlesNewRecordings(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	done := make(chan struct{}, 4)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		done <- struct{}{}
		return errors.New("handler errors are only logged")
	}

	w, err := New(dir, handler, logger.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.(*implWatcher).settle = 10 * time.Millisecond
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- w.Start(ctx) }()

	// give the event loop a moment to start
	time.Sleep(50 * time.Millisecond)
	for _, name := range []string{"skip.txt", "call.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("RIFF data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() = %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "call.wav" {
		t.Errorf("handled = %v, want [call.wav]", handled)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope"), nil, logger.NewNop()); err == nil {
		t.Error("New() should fail for a missing directory")
	}
}

func TestWaitStableMissingFile(t *testing.T) {
	w := &implWatcher{settle: time.Millisecond, logger: logger.NewNop()}
	if err := w.waitStable(context.Background(), filepath.Join(t.TempDir(), "gone.wav")); err == nil {
		t.Error("waitStable() should fail for a vanished file")
	}
}
