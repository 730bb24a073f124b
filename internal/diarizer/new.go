package diarizer

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"

	"github.com/nguyentantai21042004/minutes/internal/config"
	"github.com/nguyentantai21042004/minutes/internal/logger"
	"github.com/nguyentantai21042004/minutes/pkg/executor"
)

type implPyannote struct {
	cfg      config.DiarizationConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

type implAWS struct {
	cfg        config.AWSConfig
	s3         s3API
	transcribe transcribeAPI
	poll       time.Duration
	logger     logger.Logger
}

type implNone struct {
	logger logger.Logger
}

// New selects the backend named by diarization.backend.
func New(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (Diarizer, error) {
	switch cfg.Diarization.Backend {
	case "pyannote":
		return NewPyannote(cfg.Diarization, cfg.Paths.Temp, exec, log), nil
	case "aws":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return newAWS(cfg.AWS, s3.NewFromConfig(awsCfg), transcribe.NewFromConfig(awsCfg), log), nil
	case "none":
		return &implNone{logger: log}, nil
	default:
		return nil, fmt.Errorf("unknown diarization backend %q", cfg.Diarization.Backend)
	}
}

// NewPyannote runs the embedded pyannote helper with the configured python.
func NewPyannote(cfg config.DiarizationConfig, tempDir string, exec executor.Executor, log logger.Logger) Diarizer {
	return &implPyannote{cfg: cfg, tempDir: tempDir, executor: exec, logger: log}
}

func newAWS(cfg config.AWSConfig, s3c s3API, tc transcribeAPI, log logger.Logger) *implAWS {
	return &implAWS{
		cfg:        cfg,
		s3:         s3c,
		transcribe: tc,
		poll:       time.Duration(cfg.PollSeconds) * time.Second,
		logger:     log,
	}
}
