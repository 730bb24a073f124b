package processor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/minutes/internal/speaker"
)

// recognize runs transcription and diarization side by side. Either failure
// cancels the other.
func (p *implProcessor) recognize(ctx context.Context, wavPath string) ([]speaker.TranscriptSegment, []speaker.SpeakerTurn, error) {
	var (
		segs  []speaker.TranscriptSegment
		turns []speaker.SpeakerTurn
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if segs, err = p.transcriber.Transcribe(gctx, wavPath); err != nil {
			return fmt.Errorf("transcribe: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if turns, err = p.diarizer.Diarize(gctx, wavPath); err != nil {
			return fmt.Errorf("diarize: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return segs, turns, nil
}
