// Package speaker attaches diarized speaker labels to timestamped transcript
// segments.
package speaker

import "math"

// UnknownSpeaker is returned when no diarization turns are available.
const UnknownSpeaker = "Unknown"

// TranscriptSegment is one recognized utterance, times in seconds.
type TranscriptSegment struct {
	Start float64
	End   float64
	Text  string
}

// SpeakerTurn is a diarized interval attributed to one speaker.
type SpeakerTurn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// AttributedLine is a transcript segment with its inferred speaker.
type AttributedLine struct {
	Start   float64
	End     float64
	Speaker string
	Text    string
}

// FindSpeaker picks the speaker for seg. The first turn in list order that
// contains either endpoint of seg wins. Otherwise the turn with the smallest
// mean endpoint distance wins, earliest first on ties.
func FindSpeaker(turns []SpeakerTurn, seg TranscriptSegment) string {
	for _, t := range turns {
		if contains(t, seg.Start) || contains(t, seg.End) {
			return t.Speaker
		}
	}

	best := UnknownSpeaker
	minDiff := math.Inf(1)
	for _, t := range turns {
		diff := (math.Abs(t.Start-seg.Start) + math.Abs(t.End-seg.End)) / 2
		if diff < minDiff {
			minDiff = diff
			best = t.Speaker
		}
	}
	return best
}

func contains(t SpeakerTurn, at float64) bool {
	return t.Start <= at && at <= t.End
}

// Attribute labels every segment independently against the full turn list.
// The result has one line per segment, in input order.
func Attribute(turns []SpeakerTurn, segs []TranscriptSegment) []AttributedLine {
	lines := make([]AttributedLine, 0, len(segs))
	for _, s := range segs {
		lines = append(lines, AttributedLine{
			Start:   s.Start,
			End:     s.End,
			Speaker: FindSpeaker(turns, s),
			Text:    s.Text,
		})
	}
	return lines
}
