package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/minutes/internal/config"
	"github.com/nguyentantai21042004/minutes/internal/logger"
	"github.com/nguyentantai21042004/minutes/internal/speaker"
)

const whisperJSON = `{
  "result": {"language": "ko"},
  "transcription": [
    {"timestamps": {"from": "00:00:00,000", "to": "00:00:02,500"}, "offsets": {"from": 0, "to": 2500}, "text": " 안녕하세요"},
    {"offsets": {"from": 2500, "to": 2600}, "text": "   "},
    {"offsets": {"from": 2600, "to": 7120}, "text": " 계약 기간은 24개월입니다."}
  ]
}`

// fakeExecutor writes canned whisper output next to the --output-file prefix.
type fakeExecutor struct {
	output string
	err    error
	args   []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.args = args
	if f.err != nil {
		return "", f.err
	}
	for i, a := range args {
		if a == "--output-file" && f.output != "" {
			if err := os.WriteFile(args[i+1]+".json", []byte(f.output), 0o644); err != nil {
				return "", err
			}
		}
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, extra []string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func TestParseWhisperJSON(t *testing.T) {
	got, err := parseWhisperJSON([]byte(whisperJSON))
	if err != nil {
		t.Fatalf("parseWhisperJSON() error = %v", err)
	}
	want := []speaker.TranscriptSegment{
		{Start: 0, End: 2.5, Text: "안녕하세요"},
		{Start: 2.6, End: 7.12, Text: "계약 기간은 24개월입니다."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseWhisperJSON() mismatch (-want +got):\n%s", diff)
	}

	if _, err := parseWhisperJSON([]byte("not json")); err == nil {
		t.Error("parseWhisperJSON() should reject invalid JSON")
	}
}

func TestWhisperTranscribe(t *testing.T) {
	cfg := config.WhisperConfig{ModelPath: "ggml-large-v3.bin", BinaryPath: "whisper-cli", Language: "ko", Threads: 4}

	t.Run("success", func(t *testing.T) {
		exec := &fakeExecutor{output: whisperJSON}
		w := NewWhisper(cfg, t.TempDir(), exec, logger.NewNop())

		segs, err := w.Transcribe(context.Background(), "/rec/20240101_1200.wav")
		if err != nil {
			t.Fatalf("Transcribe() error = %v", err)
		}
		if len(segs) != 2 {
			t.Fatalf("Transcribe() returned %d segments, want 2", len(segs))
		}
		joined := strings.Join(exec.args, " ")
		for _, want := range []string{"-m ggml-large-v3.bin", "-f /rec/20240101_1200.wav", "-oj", "-l ko", "-t 4"} {
			if !strings.Contains(joined, want) {
				t.Errorf("args %q missing %q", joined, want)
			}
		}
		if strings.Contains(joined, "--prompt") {
			t.Errorf("args %q should not carry an empty prompt", joined)
		}
	})

	t.Run("command fails", func(t *testing.T) {
		w := NewWhisper(cfg, t.TempDir(), &fakeExecutor{err: errors.New("exit 1")}, logger.NewNop())
		if _, err := w.Transcribe(context.Background(), "a.wav"); err == nil {
			t.Error("Transcribe() should fail when whisper fails")
		}
	})

	t.Run("no output file", func(t *testing.T) {
		w := NewWhisper(cfg, t.TempDir(), &fakeExecutor{}, logger.NewNop())
		if _, err := w.Transcribe(context.Background(), "a.wav"); err == nil {
			t.Error("Transcribe() should fail without a JSON file")
		}
	})
}

func TestOpenAITranscribe(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "call.wav")
	if err := os.WriteFile(audio, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			http.Error(w, "bad auth "+got, http.StatusUnauthorized)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.FormValue("response_format") != "verbose_json" || r.FormValue("model") != "whisper-1" {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(f)
		if string(data) != "RIFF....WAVE" {
			http.Error(w, "bad file", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"language": "korean",
			"segments": []map[string]any{
				{"start": 0.0, "end": 1.5, "text": " 네 "},
				{"start": 1.5, "end": 4.25, "text": "견적은 32만 원입니다."},
			},
		})
	}))
	defer srv.Close()

	cfg := config.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", TranscribeModel: "whisper-1", TimeoutSeconds: 5}
	segs, err := NewOpenAI(cfg, logger.NewNop()).Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	want := []speaker.TranscriptSegment{
		{Start: 0, End: 1.5, Text: "네"},
		{Start: 1.5, End: 4.25, Text: "견적은 32만 원입니다."},
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("Transcribe() mismatch (-want +got):\n%s", diff)
	}

	cfg.APIKey = "wrong"
	if _, err := NewOpenAI(cfg, logger.NewNop()).Transcribe(context.Background(), audio); err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("Transcribe() error = %v, want http 401", err)
	}
}

func TestWriteTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "call.txt")
	segs := []speaker.TranscriptSegment{
		{Start: 0, End: 2.5, Text: "hello\nthere"},
		{Start: 2.5, End: 3.125, Text: "second  line"},
	}
	if err := WriteTranscript(path, segs); err != nil {
		t.Fatalf("WriteTranscript() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, skipped, err := speaker.ParseTranscript(f)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("ParseTranscript() = %v, skipped %v", err, skipped)
	}
	want := []speaker.TranscriptSegment{
		{Start: 0, End: 2.5, Text: "hello there"},
		{Start: 2.5, End: 3.125, Text: "second line"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	cfg := &config.Config{Transcription: config.TranscriptionConfig{Backend: "openai"}}
	if _, err := New(cfg, &fakeExecutor{}, logger.NewNop()); err != nil {
		t.Errorf("New(openai) error = %v", err)
	}
	cfg.Transcription.Backend = "vosk"
	if _, err := New(cfg, &fakeExecutor{}, logger.NewNop()); err == nil {
		t.Error("New() should reject unknown backends")
	}
}
