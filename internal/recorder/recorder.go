package recorder

import (
	"context"
	"fmt"
	"os"
	"time"
)

type chunk struct {
	samples []int16
	err     error
}

func (r *implRecorder) Record(ctx context.Context, path string) (time.Duration, error) {
	src, err := r.open(r.cfg)
	if err != nil {
		return 0, err
	}

	r.logger.Info(ctx, "Recording started: %s", path)

	chunks := make(chan chunk, 64)
	go func() {
		defer close(chunks)
		for ctx.Err() == nil {
			buf, err := src.Read()
			c := chunk{samples: buf, err: err}
			// samples already read are kept even if ctx ended meanwhile
			select {
			case chunks <- c:
			default:
				select {
				case chunks <- c:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	var samples []int16
	var readErr error
	for c := range chunks {
		if c.err != nil {
			readErr = c.err
			break
		}
		samples = append(samples, c.samples...)
	}
	// drain so the producer can exit
	for range chunks {
	}

	if err := src.Close(); err != nil {
		r.logger.Warn(ctx, "Closing input stream: %v", err)
	}
	if readErr != nil {
		return 0, fmt.Errorf("read microphone: %w", readErr)
	}

	if len(samples) == 0 {
		return 0, fmt.Errorf("no audio captured")
	}
	if err := WriteWAV(path, samples, r.cfg.SampleRate, r.cfg.Channels); err != nil {
		os.Remove(path)
		return 0, err
	}

	dur := time.Duration(len(samples)/r.cfg.Channels) * time.Second / time.Duration(r.cfg.SampleRate)
	r.logger.Info(ctx, "Recording saved: %s (%.2fs)", path, dur.Seconds())
	return dur, nil
}

func (r *implRecorder) Probe(ctx context.Context) (int, error) {
	src, err := r.open(r.cfg)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	buf, err := src.Read()
	if err != nil {
		return 0, fmt.Errorf("read microphone: %w", err)
	}
	level := Level(buf)
	r.logger.Debug(ctx, "Microphone level: %d/100", level)
	return level, nil
}
