package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/nguyentantai21042004/minutes/internal/config"
	"github.com/nguyentantai21042004/minutes/internal/logger"
)

type implSummarizer struct {
	gen      generator
	language string
	logger   logger.Logger
}

type geminiGenerator struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
	call       func(ctx context.Context, key, model, prompt string) (string, error)
}

type openAIGenerator struct {
	cfg    config.OpenAIConfig
	client *http.Client
}

// New creates a Summarizer for the configured backend.
func New(cfg *config.Config, log logger.Logger) (Summarizer, error) {
	var gen generator
	switch cfg.Summarizer.Backend {
	case "gemini":
		gen = newGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	case "openai":
		gen = &openAIGenerator{
			cfg:    cfg.OpenAI,
			client: &http.Client{Timeout: time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second},
		}
	default:
		return nil, fmt.Errorf("unknown summarizer backend %q", cfg.Summarizer.Backend)
	}

	return &implSummarizer{gen: gen, language: cfg.Summarizer.Language, logger: log}, nil
}

// newGemini rotates through the supplied Gemini API keys.
func newGemini(apiKeys []string, model string, log logger.Logger) *geminiGenerator {
	return &geminiGenerator{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
		call:    generateContent,
	}
}
