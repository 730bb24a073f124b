package diarizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/aws/smithy-go"

	"github.com/nguyentantai21042004/minutes/internal/speaker"
)

type s3API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type transcribeAPI interface {
	GetTranscriptionJob(ctx context.Context, in *transcribe.GetTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.GetTranscriptionJobOutput, error)
	StartTranscriptionJob(ctx context.Context, in *transcribe.StartTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error)
}

// transcribeResult is the subset of the Transcribe output document we read.
type transcribeResult struct {
	Results struct {
		SpeakerLabels *struct {
			Segments []struct {
				StartTime    string `json:"start_time"`
				EndTime      string `json:"end_time"`
				SpeakerLabel string `json:"speaker_label"`
			} `json:"segments"`
		} `json:"speaker_labels,omitempty"`
	} `json:"results"`
}

func (a *implAWS) Diarize(ctx context.Context, wavPath string) ([]speaker.SpeakerTurn, error) {
	hash, err := fileHash(wavPath)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("uploads/%s_%s", hash, filepath.Base(wavPath))
	job := "minutes-" + hash

	exists, err := a.objectExists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check s3 object: %w", err)
	}
	if exists {
		a.logger.Info(ctx, "s3://%s/%s already uploaded", a.cfg.Bucket, key)
	} else {
		a.logger.Info(ctx, "Uploading %s to s3://%s/%s", wavPath, a.cfg.Bucket, key)
		if err := a.upload(ctx, key, wavPath); err != nil {
			return nil, fmt.Errorf("upload to s3: %w", err)
		}
	}

	if err := a.ensureJob(ctx, job, key); err != nil {
		return nil, err
	}

	out, err := a.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(job + ".json"),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch transcribe result: %w", err)
	}
	defer out.Body.Close()

	turns, err := parseTranscribeResult(out.Body)
	if err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "Diarization completed: %d turns", len(turns))
	return turns, nil
}

func (a *implAWS) objectExists(ctx context.Context, key string) (bool, error) {
	_, err := a.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *implAWS) upload(ctx context.Context, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	return err
}

// ensureJob starts the transcription job unless one with the same name
// exists, then polls until it finishes.
func (a *implAWS) ensureJob(ctx context.Context, job, key string) error {
	status, found, err := a.jobStatus(ctx, job)
	if err != nil {
		return fmt.Errorf("check transcription job: %w", err)
	}
	if !found {
		uri := fmt.Sprintf("s3://%s/%s", a.cfg.Bucket, key)
		_, err := a.transcribe.StartTranscriptionJob(ctx, &transcribe.StartTranscriptionJobInput{
			TranscriptionJobName: aws.String(job),
			LanguageCode:         types.LanguageCode(a.cfg.LanguageCode),
			MediaFormat:          types.MediaFormatWav,
			Media:                &types.Media{MediaFileUri: aws.String(uri)},
			OutputBucketName:     aws.String(a.cfg.Bucket),
			Settings: &types.Settings{
				ShowSpeakerLabels: aws.Bool(true),
				MaxSpeakerLabels:  aws.Int32(int32(a.cfg.MaxSpeakers)),
			},
		})
		if err != nil {
			return fmt.Errorf("start transcription job: %w", err)
		}
		a.logger.Info(ctx, "Transcription job %s started", job)
	} else {
		a.logger.Info(ctx, "Transcription job %s already exists with status %s", job, status)
	}

	for {
		switch status {
		case types.TranscriptionJobStatusCompleted:
			return nil
		case types.TranscriptionJobStatusFailed:
			return fmt.Errorf("transcription job %s failed", job)
		}

		t := time.NewTimer(a.poll)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}

		if status, _, err = a.jobStatus(ctx, job); err != nil {
			return fmt.Errorf("poll transcription job: %w", err)
		}
		a.logger.Debug(ctx, "Job %s status: %s", job, status)
	}
}

func (a *implAWS) jobStatus(ctx context.Context, job string) (types.TranscriptionJobStatus, bool, error) {
	out, err := a.transcribe.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(job),
	})
	if err != nil {
		if isNotFoundError(err) || strings.Contains(err.Error(), "couldn't be found") {
			return "", false, nil
		}
		return "", false, err
	}
	if out.TranscriptionJob == nil {
		return "", false, nil
	}
	return out.TranscriptionJob.TranscriptionJobStatus, true, nil
}

func parseTranscribeResult(r io.Reader) ([]speaker.SpeakerTurn, error) {
	var res transcribeResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode transcribe result: %w", err)
	}
	if res.Results.SpeakerLabels == nil {
		return nil, errors.New("transcribe result has no speaker labels")
	}

	turns := make([]speaker.SpeakerTurn, 0, len(res.Results.SpeakerLabels.Segments))
	for _, s := range res.Results.SpeakerLabels.Segments {
		start, err := strconv.ParseFloat(s.StartTime, 64)
		if err != nil {
			return nil, fmt.Errorf("bad start_time %q: %w", s.StartTime, err)
		}
		end, err := strconv.ParseFloat(s.EndTime, 64)
		if err != nil {
			return nil, fmt.Errorf("bad end_time %q: %w", s.EndTime, err)
		}
		if end <= start {
			continue
		}
		turns = append(turns, speaker.SpeakerTurn{Start: start, End: end, Speaker: s.SpeakerLabel})
	}
	return turns, nil
}

// fileHash names uploads by content so reruns reuse the object and the job.
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash audio: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil))[:16], nil
}

func isNotFoundError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NotFoundException", "NoSuchKey", "404":
			return true
		}
	}
	return strings.Contains(err.Error(), "NotFound:")
}
