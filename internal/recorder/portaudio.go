package recorder

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/nguyentantai21042004/minutes/internal/config"
)

type paSource struct {
	stream *portaudio.Stream
	in     []int16
}

func openPortAudio(cfg config.RecorderConfig) (source, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	in := make([]int16, cfg.BufferSize*cfg.Channels)
	stream, err := portaudio.OpenDefaultStream(cfg.Channels, 0, float64(cfg.SampleRate), cfg.BufferSize, in)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start input stream: %w", err)
	}
	return &paSource{stream: stream, in: in}, nil
}

// Read blocks until one buffer is filled. An input overflow only means
// samples were dropped, so the buffer is still returned.
func (s *paSource) Read() ([]int16, error) {
	err := s.stream.Read()
	if err != nil && !errors.Is(err, portaudio.InputOverflowed) {
		return nil, err
	}
	out := make([]int16, len(s.in))
	copy(out, s.in)
	return out, nil
}

func (s *paSource) Close() error {
	stopErr := s.stream.Stop()
	closeErr := s.stream.Close()
	termErr := portaudio.Terminate()
	return errors.Join(stopErr, closeErr, termErr)
}
