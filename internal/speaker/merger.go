package speaker

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/minutes/internal/fileutil"
)

// Merge checks the inputs, diarizes the recording and merges the result
func (m *implMerger) Merge(ctx context.Context, audioPath, transcriptPath string) (string, error) {
	if !strings.EqualFold(filepath.Ext(audioPath), ".wav") {
		return "", fmt.Errorf("%s: %w", audioPath, ErrNotWAV)
	}
	if !fileutil.Exists(transcriptPath) {
		return "", fmt.Errorf("transcript not found: %s", transcriptPath)
	}

	m.logger.Info(ctx, "Running speaker diarization: %s", audioPath)
	turns, err := m.source.Diarize(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("diarize %s: %w", audioPath, err)
	}
	m.logger.Debug(ctx, "Diarization produced %d turns", len(turns))

	return m.MergeFile(ctx, transcriptPath, turns)
}

// MergeFile labels each transcript line and writes <stem>_diarized.txt
func (m *implMerger) MergeFile(ctx context.Context, transcriptPath string, turns []SpeakerTurn) (string, error) {
	outPath, err := DiarizedPath(transcriptPath)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", fmt.Errorf("%s: %w", transcriptPath, ErrEmptyTranscript)
	}

	segs, skipped, err := ParseTranscript(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	for _, s := range skipped {
		m.logger.Warn(ctx, "Skipping malformed transcript line %d (%s): %s", s.Number, s.Reason, s.Text)
	}

	var b strings.Builder
	for _, l := range Attribute(turns, segs) {
		b.WriteString(FormatLine(l))
		b.WriteByte('\n')
	}

	if err := fileutil.WriteFileAtomic(outPath, []byte(b.String())); err != nil {
		return "", fmt.Errorf("write diarized transcript: %w", err)
	}

	m.logger.Info(ctx, "Speaker attribution complete: %d lines -> %s", len(segs), outPath)
	return outPath, nil
}
