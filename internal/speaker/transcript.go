package speaker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

const (
	transcriptExt = ".txt"
	diarizedTag   = "_diarized"
)

var (
	// ErrNotText is returned when a transcript path lacks the .txt extension.
	ErrNotText = errors.New("transcript path must end with " + transcriptExt)
	// ErrEmptyTranscript is returned for a transcript with no content.
	ErrEmptyTranscript = errors.New("transcript is empty")
	// ErrNotWAV is returned when the audio handed to diarization is not a WAV file.
	ErrNotWAV = errors.New("diarization requires a .wav file")
)

// SkippedLine describes a transcript line that could not be parsed.
type SkippedLine struct {
	Number int
	Text   string
	Reason string
}

// ParseTranscript reads "<start> <end> <text>" lines. Only the first two
// whitespace runs separate fields; the text keeps its inner spacing. Blank
// lines are ignored and malformed lines are returned in skipped.
func ParseTranscript(r io.Reader) (segs []TranscriptSegment, skipped []SkippedLine, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		seg, reason := parseLine(line)
		if reason != "" {
			skipped = append(skipped, SkippedLine{Number: n, Text: line, Reason: reason})
			continue
		}
		segs = append(segs, seg)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read transcript: %w", err)
	}
	return segs, skipped, nil
}

func parseLine(line string) (TranscriptSegment, string) {
	fields := make([]string, 0, 2)
	rest := line
	for len(fields) < 2 {
		idx := strings.IndexFunc(rest, unicode.IsSpace)
		if idx < 0 {
			break
		}
		fields = append(fields, rest[:idx])
		rest = strings.TrimLeftFunc(rest[idx:], unicode.IsSpace)
	}
	if len(fields) < 2 || rest == "" {
		return TranscriptSegment{}, "expected <start> <end> <text>"
	}

	start, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return TranscriptSegment{}, fmt.Sprintf("invalid start %q", fields[0])
	}
	end, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return TranscriptSegment{}, fmt.Sprintf("invalid end %q", fields[1])
	}
	return TranscriptSegment{Start: start, End: end, Text: rest}, ""
}

// FormatLine renders an attributed line as "[s.ss - e.ee] Speaker X: text".
func FormatLine(l AttributedLine) string {
	return fmt.Sprintf("[%.2f - %.2f] Speaker %s: %s", l.Start, l.End, l.Speaker, l.Text)
}

// FormatSegment renders a segment in the transcript file format.
func FormatSegment(s TranscriptSegment) string {
	return fmt.Sprintf("%.3f %.3f %s", s.Start, s.End, s.Text)
}

// DiarizedPath derives the merged output path: "a/b.txt" -> "a/b_diarized.txt".
func DiarizedPath(transcriptPath string) (string, error) {
	if filepath.Ext(transcriptPath) != transcriptExt {
		return "", fmt.Errorf("%s: %w", transcriptPath, ErrNotText)
	}
	return strings.TrimSuffix(transcriptPath, transcriptExt) + diarizedTag + transcriptExt, nil
}
