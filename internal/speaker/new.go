package speaker

import (
	"github.com/nguyentantai21042004/minutes/internal/logger"
)

type implMerger struct {
	source TurnSource
	logger logger.Logger
}

// New creates a Merger that diarizes through source
func New(source TurnSource, log logger.Logger) Merger {
	return &implMerger{
		source: source,
		logger: log,
	}
}
