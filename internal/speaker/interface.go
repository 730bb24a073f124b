package speaker

import "context"

// TurnSource produces diarized speaker turns for a WAV recording
type TurnSource interface {
	Diarize(ctx context.Context, wavPath string) ([]SpeakerTurn, error)
}

// Merger combines a transcript file with diarization turns
type Merger interface {
	// Merge diarizes audioPath and writes the speaker-labelled transcript
	Merge(ctx context.Context, audioPath, transcriptPath string) (string, error)
	// MergeFile writes the speaker-labelled transcript using the given turns
	MergeFile(ctx context.Context, transcriptPath string, turns []SpeakerTurn) (string, error)
}
