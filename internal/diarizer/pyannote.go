package diarizer

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/minutes/internal/speaker"
)

//go:embed assets/pyannote_diarize.py
var pyannoteScript []byte

const scriptName = "pyannote_diarize.py"

func (p *implPyannote) Diarize(ctx context.Context, wavPath string) ([]speaker.SpeakerTurn, error) {
	ok, err := IsWAV(wavPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", wavPath, speaker.ErrNotWAV)
	}
	abs, err := filepath.Abs(wavPath)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(p.tempDir, "pyannote-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, scriptName), pyannoteScript, 0o755); err != nil {
		return nil, fmt.Errorf("write helper script: %w", err)
	}

	var env []string
	if p.cfg.HFToken != "" {
		env = append(env, "HUGGINGFACE_ACCESS_TOKEN="+p.cfg.HFToken)
	}

	p.logger.Info(ctx, "Running speaker diarization (%s): %s", p.cfg.Model, wavPath)

	out, err := p.executor.ExecuteInDir(ctx, dir, env, p.cfg.Python, scriptName, "--audio", abs, "--model", p.cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("pyannote diarize: %w", err)
	}

	turns, err := parseTurns(out)
	if err != nil {
		return nil, err
	}
	p.logger.Info(ctx, "Diarization completed: %d turns", len(turns))
	return turns, nil
}

// parseTurns reads the helper's JSON array. Libraries may log to stdout
// before it, so only the last line is decoded.
func parseTurns(out string) ([]speaker.SpeakerTurn, error) {
	out = strings.TrimSpace(out)
	if i := strings.LastIndexByte(out, '\n'); i >= 0 {
		out = out[i+1:]
	}

	var turns []speaker.SpeakerTurn
	if err := json.Unmarshal([]byte(out), &turns); err != nil {
		return nil, fmt.Errorf("parse diarization output: %w", err)
	}
	return turns, nil
}
