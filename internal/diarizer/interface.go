package diarizer

import (
	"context"

	"github.com/nguyentantai21042004/minutes/internal/speaker"
)

// Diarizer labels who spoke when in a WAV recording. Every backend also
// satisfies speaker.TurnSource.
type Diarizer interface {
	Diarize(ctx context.Context, wavPath string) ([]speaker.SpeakerTurn, error)
}
