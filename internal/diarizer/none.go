package diarizer

import (
	"context"

	"github.com/nguyentantai21042004/minutes/internal/speaker"
)

// Diarize returns no turns, so every line is attributed to the unknown speaker.
func (n *implNone) Diarize(ctx context.Context, wavPath string) ([]speaker.SpeakerTurn, error) {
	n.logger.Debug(ctx, "Diarization disabled, skipping %s", wavPath)
	return nil, nil
}
