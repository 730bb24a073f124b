package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/minutes/internal/fileutil"
)

// prepareAudio returns a WAV path for audioPath. Non-WAV input is converted
// into the temp dir; the bool reports whether the caller owns that file.
func (p *implProcessor) prepareAudio(ctx context.Context, audioPath string) (string, bool, error) {
	if strings.EqualFold(filepath.Ext(audioPath), ".wav") {
		return audioPath, false, nil
	}

	wavPath := filepath.Join(p.cfg.Paths.Temp, fileutil.Stem(audioPath)+"_16k.wav")
	p.logger.Info(ctx, "Converting to 16kHz mono WAV: %s", audioPath)

	// -vn: drop any video stream
	// -ar 16000 -ac 1: what both whisper and pyannote expect
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}
	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", false, fmt.Errorf("ffmpeg convert audio: %w", err)
	}

	return wavPath, true, nil
}
