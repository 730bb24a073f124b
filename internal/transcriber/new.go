package transcriber

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/minutes/internal/config"
	"github.com/nguyentantai21042004/minutes/internal/logger"
	"github.com/nguyentantai21042004/minutes/pkg/executor"
)

type implWhisper struct {
	cfg      config.WhisperConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

type implOpenAI struct {
	cfg    config.OpenAIConfig
	client *http.Client
	logger logger.Logger
}

// New selects the backend named by transcription.backend.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Transcription.Backend {
	case "whisper":
		return NewWhisper(cfg.Whisper, cfg.Paths.Temp, exec, log), nil
	case "openai":
		return NewOpenAI(cfg.OpenAI, log), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", cfg.Transcription.Backend)
	}
}

// NewWhisper runs a local whisper.cpp binary.
func NewWhisper(cfg config.WhisperConfig, tempDir string, exec executor.Executor, log logger.Logger) Transcriber {
	return &implWhisper{cfg: cfg, tempDir: tempDir, executor: exec, logger: log}
}

// NewOpenAI calls the hosted audio transcription endpoint.
func NewOpenAI(cfg config.OpenAIConfig, log logger.Logger) Transcriber {
	return &implOpenAI{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		logger: log,
	}
}
