package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/minutes/internal/fileutil"
	"github.com/nguyentantai21042004/minutes/internal/transcriber"
)

var ErrNoSpeech = errors.New("no speech recognized")

// Process orchestrates the entire recording pipeline
func (p *implProcessor) Process(ctx context.Context, audioPath string) (*Result, error) {
	if err := p.sem.acquire(ctx); err != nil {
		return nil, err
	}
	defer p.sem.release()

	startTime := time.Now()
	stem := fileutil.Stem(audioPath)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting recording processing: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Make sure we have a WAV
	wavPath, temp, err := p.prepareAudio(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("prepare audio: %w", err)
	}
	if temp {
		defer p.cleanupTempFile(ctx, wavPath)
	}

	// Step 2: Transcribe and diarize concurrently
	segs, turns, err := p.recognize(ctx, wavPath)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("%s: %w", audioPath, ErrNoSpeech)
	}

	res := &Result{
		Transcript: filepath.Join(p.cfg.Paths.Transcriptions, stem+".txt"),
		Summary:    filepath.Join(p.cfg.Paths.Summaries, stem+".txt"),
		Report:     filepath.Join(p.cfg.Paths.Reports, stem+"."+p.cfg.Report.Format),
	}

	// Step 3: Save the timed transcript
	if err := transcriber.WriteTranscript(res.Transcript, segs); err != nil {
		return nil, fmt.Errorf("write transcript: %w", err)
	}

	// Step 4: Attach speaker labels
	if res.Diarized, err = p.merger.MergeFile(ctx, res.Transcript, turns); err != nil {
		return nil, fmt.Errorf("merge speakers: %w", err)
	}

	// Step 5: Summarize
	if err := p.summarizer.SummarizeFile(ctx, res.Diarized, res.Summary); err != nil {
		return nil, err
	}

	// Step 6: Render the report
	if err := p.reporter.RenderFile(ctx, res.Summary, res.Report); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	// Step 7: Archive the recording so the watcher won't pick it up again
	if p.inRecordings(audioPath) {
		if res.Archived, err = p.moveToArchived(ctx, audioPath); err != nil {
			p.logger.Warn(ctx, "Failed to move recording to archived folder: %v", err)
		}
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Diarized transcript: %s", res.Diarized)
	p.logger.Info(ctx, "Report: %s", res.Report)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return res, nil
}
