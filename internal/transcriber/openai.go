package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/minutes/internal/speaker"
)

type verboseResponse struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (o *implOpenAI) Transcribe(ctx context.Context, audioPath string) ([]speaker.TranscriptSegment, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", o.cfg.TranscribeModel); err != nil {
		return nil, err
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return nil, err
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	url := strings.TrimRight(o.cfg.BaseURL, "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	o.logger.Info(ctx, "Uploading %s to %s", filepath.Base(audioPath), o.cfg.TranscribeModel)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai transcribe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var vr verboseResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decode openai response: %w", err)
	}

	segs := make([]speaker.TranscriptSegment, 0, len(vr.Segments))
	for _, s := range vr.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		segs = append(segs, speaker.TranscriptSegment{Start: s.Start, End: s.End, Text: text})
	}

	o.logger.Info(ctx, "Transcription completed: %d segments (language %s)", len(segs), vr.Language)
	return segs, nil
}
