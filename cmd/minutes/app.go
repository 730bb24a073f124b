package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/minutes/internal/config"
	"github.com/nguyentantai21042004/minutes/internal/diarizer"
	"github.com/nguyentantai21042004/minutes/internal/logger"
	"github.com/nguyentantai21042004/minutes/internal/processor"
	"github.com/nguyentantai21042004/minutes/internal/report"
	"github.com/nguyentantai21042004/minutes/internal/summarizer"
	"github.com/nguyentantai21042004/minutes/internal/transcriber"
	"github.com/nguyentantai21042004/minutes/pkg/executor"
)

// app carries the loaded config and per-command flag values.
type app struct {
	cfg    *config.Config
	logger logger.Logger

	out    string
	all    bool
	once   bool
	andRun bool
}

func (a *app) processor(ctx context.Context) (processor.Processor, error) {
	exec := executor.New()

	t, err := transcriber.New(a.cfg, exec, a.logger)
	if err != nil {
		return nil, err
	}
	d, err := diarizer.New(ctx, a.cfg, exec, a.logger)
	if err != nil {
		return nil, err
	}
	s, err := summarizer.New(a.cfg, a.logger)
	if err != nil {
		return nil, err
	}

	return processor.New(a.cfg, exec, processor.Stages{
		Transcriber: t,
		Diarizer:    d,
		Summarizer:  s,
		Reporter:    report.New(a.cfg.Report, a.logger),
	}, a.logger), nil
}

// ensureDirectories creates required directories if they don't exist
func (a *app) ensureDirectories() error {
	p := a.cfg.Paths
	for _, dir := range []string{p.Recordings, p.Transcriptions, p.Summaries, p.Reports, p.Archived} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
