package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/minutes/internal/speaker"
)

// Transcriber turns an audio file into timed text segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]speaker.TranscriptSegment, error)
}
