package diarizer

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// IsWAV reports whether path holds a readable RIFF/WAVE stream.
func IsWAV(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	return wav.NewDecoder(f).IsValidFile(), nil
}
