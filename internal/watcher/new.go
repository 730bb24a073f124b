package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/minutes/internal/logger"
)

const defaultSettle = 500 * time.Millisecond

// New watches dir. Each new audio file is handed to handler in its own
// goroutine; the handler is responsible for bounding concurrency.
func New(dir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		dir:     dir,
		handler: handler,
		logger:  log,
		watcher: watcher,
		settle:  defaultSettle,
	}, nil
}
