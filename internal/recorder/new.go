package recorder

import (
	"github.com/nguyentantai21042004/minutes/internal/config"
	"github.com/nguyentantai21042004/minutes/internal/logger"
)

type implRecorder struct {
	cfg    config.RecorderConfig
	open   func(cfg config.RecorderConfig) (source, error)
	logger logger.Logger
}

// New records from the default input device through PortAudio.
func New(cfg config.RecorderConfig, log logger.Logger) Recorder {
	return &implRecorder{cfg: cfg, open: openPortAudio, logger: log}
}
