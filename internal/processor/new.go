package processor

import (
	"github.com/nguyentantai21042004/minutes/internal/config"
	"github.com/nguyentantai21042004/minutes/internal/diarizer"
	"github.com/nguyentantai21042004/minutes/internal/logger"
	"github.com/nguyentantai21042004/minutes/internal/report"
	"github.com/nguyentantai21042004/minutes/internal/speaker"
	"github.com/nguyentantai21042004/minutes/internal/summarizer"
	"github.com/nguyentantai21042004/minutes/internal/transcriber"
	"github.com/nguyentantai21042004/minutes/pkg/executor"
)

type implProcessor struct {
	cfg         *config.Config
	executor    executor.Executor
	transcriber transcriber.Transcriber
	diarizer    diarizer.Diarizer
	merger      speaker.Merger
	summarizer  summarizer.Summarizer
	reporter    report.Reporter
	sem         *semaphore
	logger      logger.Logger
}

// Stages bundles the pipeline's backends.
type Stages struct {
	Transcriber transcriber.Transcriber
	Diarizer    diarizer.Diarizer
	Summarizer  summarizer.Summarizer
	Reporter    report.Reporter
}

// New creates a Processor that runs at most performance.max_concurrent
// recordings at a time.
func New(cfg *config.Config, exec executor.Executor, stages Stages, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		executor:    exec,
		transcriber: stages.Transcriber,
		diarizer:    stages.Diarizer,
		merger:      speaker.New(stages.Diarizer, log),
		summarizer:  stages.Summarizer,
		reporter:    stages.Reporter,
		sem:         newSemaphore(cfg.Performance.MaxConcurrent),
		logger:      log,
	}
}
