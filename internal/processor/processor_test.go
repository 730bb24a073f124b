package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/minutes/internal/config"
	"github.com/nguyentantai21042004/minutes/internal/logger"
	"github.com/nguyentantai21042004/minutes/internal/speaker"
)

type fakeTranscriber struct {
	segs    []speaker.TranscriptSegment
	err     error
	delay   time.Duration
	running int32
	peak    int32
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string) ([]speaker.TranscriptSegment, error) {
	n := atomic.AddInt32(&f.running, 1)
	defer atomic.AddInt32(&f.running, -1)
	for {
		p := atomic.LoadInt32(&f.peak)
		if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
			break
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.segs, f.err
}

type fakeDiarizer struct {
	turns []speaker.SpeakerTurn
	err   error
	paths []string
	mu    sync.Mutex
}

func (f *fakeDiarizer) Diarize(ctx context.Context, path string) ([]speaker.SpeakerTurn, error) {
	f.mu.Lock()
	f.paths = append(f.paths, path)
	f.mu.Unlock()
	return f.turns, f.err
}

type fakeSummarizer struct {
	err error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	return "### Overview", f.err
}

func (f *fakeSummarizer) SummarizeFile(ctx context.Context, in, out string) error {
	if f.err != nil {
		return f.err
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, []byte("### Overview\n"+string(data)), 0o644)
}

func (f *fakeSummarizer) SummarizeAll(ctx context.Context, src, dest string) error { return nil }

type fakeReporter struct {
	rendered []string
	mu       sync.Mutex
}

func (f *fakeReporter) RenderFile(ctx context.Context, in, out string) error {
	f.mu.Lock()
	f.rendered = append(f.rendered, out)
	f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, []byte("%PDF"), 0o644)
}

type fakeExecutor struct {
	calls [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if name == "ffmpeg" {
		return "", os.WriteFile(args[len(args)-1], []byte("RIFF"), 0o644)
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, env []string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Recordings:     filepath.Join(root, "recordings"),
			Transcriptions: filepath.Join(root, "transcriptions"),
			Summaries:      filepath.Join(root, "summaries"),
			Reports:        filepath.Join(root, "pdfs"),
			Archived:       filepath.Join(root, "archived"),
			Temp:           filepath.Join(root, "tmp"),
		},
		Whisper: config.WhisperConfig{ModelPath: "m", BinaryPath: "w"},
		Gemini:  config.GeminiConfig{APIKeys: []string{"k"}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{cfg.Paths.Recordings, cfg.Paths.Temp} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return cfg
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
}

var (
	testSegs = []speaker.TranscriptSegment{
		{Start: 0, End: 2, Text: "견적 부탁드립니다"},
		{Start: 2.5, End: 4, Text: "32만 원입니다"},
	}
	testTurns = []speaker.SpeakerTurn{
		{Start: 0, End: 2.2, Speaker: "SPEAKER_00"},
		{Start: 2.2, End: 5, Speaker: "SPEAKER_01"},
	}
)

func TestProcessWAVFromRecordings(t *testing.T) {
	cfg := testConfig(t)
	audio := filepath.Join(cfg.Paths.Recordings, "20240305_1407.wav")
	touch(t, audio)

	exec := &fakeExecutor{}
	rep := &fakeReporter{}
	p := New(cfg, exec, Stages{
		Transcriber: &fakeTranscriber{segs: testSegs},
		Diarizer:    &fakeDiarizer{turns: testTurns},
		Summarizer:  &fakeSummarizer{},
		Reporter:    rep,
	}, logger.NewNop())

	res, err := p.Process(context.Background(), audio)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(exec.calls) != 0 {
		t.Errorf("ffmpeg should not run for WAV input: %v", exec.calls)
	}
	if want := filepath.Join(cfg.Paths.Transcriptions, "20240305_1407_diarized.txt"); res.Diarized != want {
		t.Errorf("Diarized = %q, want %q", res.Diarized, want)
	}
	got, err := os.ReadFile(res.Diarized)
	if err != nil {
		t.Fatal(err)
	}
	want := "[0.00 - 2.00] Speaker SPEAKER_00: 견적 부탁드립니다\n" +
		"[2.50 - 4.00] Speaker SPEAKER_01: 32만 원입니다\n"
	if string(got) != want {
		t.Errorf("diarized transcript = %q, want %q", got, want)
	}
	if res.Report != filepath.Join(cfg.Paths.Reports, "20240305_1407.pdf") {
		t.Errorf("Report = %q", res.Report)
	}
	if len(rep.rendered) != 1 || rep.rendered[0] != res.Report {
		t.Errorf("rendered = %v", rep.rendered)
	}
	if _, err := os.Stat(audio); !os.IsNotExist(err) {
		t.Error("recording was not moved out of the recordings folder")
	}
	if res.Archived != filepath.Join(cfg.Paths.Archived, "20240305_1407.wav") {
		t.Errorf("Archived = %q", res.Archived)
	}
}

func TestProcessConvertsOtherFormats(t *testing.T) {
	cfg := testConfig(t)
	audio := filepath.Join(t.TempDir(), "call.m4a")
	touch(t, audio)

	exec := &fakeExecutor{}
	dia := &fakeDiarizer{turns: testTurns}
	p := New(cfg, exec, Stages{
		Transcriber: &fakeTranscriber{segs: testSegs},
		Diarizer:    dia,
		Summarizer:  &fakeSummarizer{},
		Reporter:    &fakeReporter{},
	}, logger.NewNop())

	res, err := p.Process(context.Background(), audio)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(exec.calls) != 1 || exec.calls[0][0] != "ffmpeg" {
		t.Fatalf("calls = %v, want one ffmpeg run", exec.calls)
	}
	args := strings.Join(exec.calls[0], " ")
	if !strings.Contains(args, "-ar 16000") || !strings.Contains(args, "-ac 1") {
		t.Errorf("ffmpeg args = %q", args)
	}
	wav := filepath.Join(cfg.Paths.Temp, "call_16k.wav")
	if len(dia.paths) != 1 || dia.paths[0] != wav {
		t.Errorf("diarized %v, want %s", dia.paths, wav)
	}
	if _, err := os.Stat(wav); !os.IsNotExist(err) {
		t.Error("converted WAV not cleaned up")
	}
	if _, err := os.Stat(audio); err != nil {
		t.Error("input outside the recordings folder should not be archived")
	}
	if res.Archived != "" {
		t.Errorf("Archived = %q, want empty", res.Archived)
	}
}

func TestProcessFailures(t *testing.T) {
	tests := []struct {
		name    string
		stages  Stages
		wantErr error
		wantMsg string
	}{
		{
			name: "transcription fails",
			stages: Stages{
				Transcriber: &fakeTranscriber{err: errors.New("model missing")},
				Diarizer:    &fakeDiarizer{turns: testTurns},
			},
			wantMsg: "transcribe: model missing",
		},
		{
			name: "diarization fails and cancels transcription",
			stages: Stages{
				Transcriber: &fakeTranscriber{segs: testSegs, delay: time.Minute},
				Diarizer:    &fakeDiarizer{err: errors.New("no token")},
			},
			wantMsg: "diarize: no token",
		},
		{
			name: "nothing recognized",
			stages: Stages{
				Transcriber: &fakeTranscriber{},
				Diarizer:    &fakeDiarizer{},
			},
			wantErr: ErrNoSpeech,
		},
		{
			name: "summary fails",
			stages: Stages{
				Transcriber: &fakeTranscriber{segs: testSegs},
				Diarizer:    &fakeDiarizer{turns: testTurns},
				Summarizer:  &fakeSummarizer{err: errors.New("quota")},
			},
			wantMsg: "quota",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			audio := filepath.Join(cfg.Paths.Recordings, "a.wav")
			touch(t, audio)
			if tt.stages.Summarizer == nil {
				tt.stages.Summarizer = &fakeSummarizer{}
			}
			tt.stages.Reporter = &fakeReporter{}

			_, err := New(cfg, &fakeExecutor{}, tt.stages, logger.NewNop()).Process(context.Background(), audio)
			if err == nil {
				t.Fatal("Process() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want %q", err, tt.wantMsg)
			}
			if _, err := os.Stat(audio); err != nil {
				t.Error("failed recordings must stay in the recordings folder")
			}
		})
	}
}

func TestProcessConcurrencyLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Performance.MaxConcurrent = 1

	tr := &fakeTranscriber{segs: testSegs, delay: 20 * time.Millisecond}
	p := New(cfg, &fakeExecutor{}, Stages{
		Transcriber: tr,
		Diarizer:    &fakeDiarizer{turns: testTurns},
		Summarizer:  &fakeSummarizer{},
		Reporter:    &fakeReporter{},
	}, logger.NewNop())

	var wg sync.WaitGroup
	errs := make(chan error, 3)
	for _, name := range []string{"a.wav", "b.wav", "c.wav"} {
		audio := filepath.Join(cfg.Paths.Recordings, name)
		touch(t, audio)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Process(context.Background(), audio)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Process() error = %v", err)
		}
	}
	if peak := atomic.LoadInt32(&tr.peak); peak != 1 {
		t.Errorf("peak concurrent transcriptions = %d, want 1", peak)
	}
}

func TestSemaphoreAcquireCancelled(t *testing.T) {
	s := newSemaphore(1)
	if err := s.acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("acquire() = %v, want context.Canceled", err)
	}
	s.release()
}
