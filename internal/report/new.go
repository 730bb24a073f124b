package report

import (
	"github.com/nguyentantai21042004/minutes/internal/config"
	"github.com/nguyentantai21042004/minutes/internal/logger"
)

type implReporter struct {
	cfg    config.ReportConfig
	layout Layout
	logger logger.Logger
}

// New creates a Reporter from a validated report config.
func New(cfg config.ReportConfig, log logger.Logger) Reporter {
	return &implReporter{
		cfg:    cfg,
		layout: LayoutFromConfig(cfg),
		logger: log,
	}
}
