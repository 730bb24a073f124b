package transcriber

import (
	"strings"

	"github.com/nguyentantai21042004/minutes/internal/fileutil"
	"github.com/nguyentantai21042004/minutes/internal/speaker"
)

// WriteTranscript stores segments as "<start> <end> <text>" lines, the input
// format of the speaker merger.
func WriteTranscript(path string, segs []speaker.TranscriptSegment) error {
	var b strings.Builder
	for _, s := range segs {
		// keep each segment on one line
		s.Text = strings.Join(strings.Fields(s.Text), " ")
		b.WriteString(speaker.FormatSegment(s))
		b.WriteByte('\n')
	}
	return fileutil.WriteFileAtomic(path, []byte(b.String()))
}
