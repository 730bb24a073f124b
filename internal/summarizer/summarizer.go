package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/minutes/internal/fileutil"
)

var ErrEmptySummary = errors.New("empty summary")

func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("empty transcript")
	}

	summary, err := s.gen.Generate(ctx, instructions(s.language), transcript)
	if err != nil {
		return "", err
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", ErrEmptySummary
	}
	return summary, nil
}

func (s *implSummarizer) SummarizeFile(ctx context.Context, inPath, outPath string) error {
	content, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	s.logger.Info(ctx, "Summarizing: %s", inPath)
	summary, err := s.Summarize(ctx, string(content))
	if err != nil {
		return fmt.Errorf("summarize %s: %w", filepath.Base(inPath), err)
	}

	if err := fileutil.WriteFileAtomic(outPath, []byte(summary+"\n")); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	s.logger.Info(ctx, "[DONE] %s -> %s", filepath.Base(inPath), outPath)
	return nil
}

// SummarizeAll keeps going after a failed file and reports the counts.
func (s *implSummarizer) SummarizeAll(ctx context.Context, srcDir, destDir string) error {
	files, err := discoverTranscripts(srcDir)
	if err != nil {
		return fmt.Errorf("discover transcripts: %w", err)
	}
	if len(files) == 0 {
		s.logger.Info(ctx, "No diarized transcripts found in %s", srcDir)
		return nil
	}

	successCount, failCount, skipCount := 0, 0, 0
	for i, path := range files {
		name := strings.TrimSuffix(fileutil.Stem(path), diarizedSuffix)
		out := filepath.Join(destDir, name+".txt")
		if fileutil.Exists(out) {
			skipCount++
			continue
		}

		s.logger.Info(ctx, "[%d/%d] %s", i+1, len(files), name)
		if err := s.SummarizeFile(ctx, path, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			failCount++
			continue
		}
		successCount++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed, %d already done", successCount, failCount, skipCount)
	return nil
}

const diarizedSuffix = "_diarized"

func discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.HasSuffix(e.Name(), diarizedSuffix+".txt") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
