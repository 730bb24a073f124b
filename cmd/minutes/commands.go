package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/minutes/internal/diarizer"
	"github.com/nguyentantai21042004/minutes/internal/fileutil"
	"github.com/nguyentantai21042004/minutes/internal/recorder"
	"github.com/nguyentantai21042004/minutes/internal/report"
	"github.com/nguyentantai21042004/minutes/internal/speaker"
	"github.com/nguyentantai21042004/minutes/internal/summarizer"
	"github.com/nguyentantai21042004/minutes/internal/transcriber"
	"github.com/nguyentantai21042004/minutes/internal/watcher"
	"github.com/nguyentantai21042004/minutes/pkg/executor"
)

var errUsage = errors.New("missing arguments, see minutes help")

func recordFlags(fs *flag.FlagSet) func(*app) {
	out := fs.String("out", "", "output WAV path (default <recordings>/<yyyymmdd_hhmm>.wav)")
	andRun := fs.Bool("process", false, "run the pipeline on the recording afterwards")
	return func(a *app) { a.out, a.andRun = *out, *andRun }
}

func runRecord(ctx context.Context, a *app, _ []string) error {
	path := a.out
	if path == "" {
		path = filepath.Join(a.cfg.Paths.Recordings, recorder.RecordingName(time.Now()))
	}

	a.logger.Info(ctx, "Recording to %s, press Ctrl+C to stop", path)
	dur, err := recorder.New(a.cfg.Recorder, a.logger).Record(ctx, path)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%.1fs)\n", path, dur.Seconds())

	if !a.andRun {
		return nil
	}
	// ctx is already cancelled by the Ctrl+C that ended the recording
	pctx, stop := signalContext()
	defer stop()
	return processFiles(pctx, a, []string{path})
}

func levelFlags(fs *flag.FlagSet) func(*app) {
	once := fs.Bool("once", false, "print a single reading and exit")
	return func(a *app) { a.once = *once }
}

func runLevel(ctx context.Context, a *app, _ []string) error {
	rec := recorder.New(a.cfg.Recorder, a.logger)
	for {
		level, err := rec.Probe(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\rmic level: %3d/100 %-20s", level, strings.Repeat("#", level/5))
		if a.once {
			fmt.Println()
			return nil
		}
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func runTranscribe(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	t, err := transcriber.New(a.cfg, executor.New(), a.logger)
	if err != nil {
		return err
	}
	for _, audio := range args {
		segs, err := t.Transcribe(ctx, audio)
		if err != nil {
			return fmt.Errorf("transcribe %s: %w", audio, err)
		}
		out := filepath.Join(a.cfg.Paths.Transcriptions, fileutil.Stem(audio)+".txt")
		if err := transcriber.WriteTranscript(out, segs); err != nil {
			return err
		}
		fmt.Println(out)
	}
	return nil
}

func runDiarize(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	d, err := diarizer.New(ctx, a.cfg, executor.New(), a.logger)
	if err != nil {
		return err
	}
	out, err := speaker.New(d, a.logger).Merge(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func summarizeFlags(fs *flag.FlagSet) func(*app) {
	out := fs.String("out", "", "summary output path (default <summaries>/<name>.txt)")
	all := fs.Bool("all", false, "summarize every diarized transcript in the transcriptions folder")
	return func(a *app) { a.out, a.all = *out, *all }
}

func runSummarize(ctx context.Context, a *app, args []string) error {
	s, err := summarizer.New(a.cfg, a.logger)
	if err != nil {
		return err
	}
	if a.all {
		return s.SummarizeAll(ctx, a.cfg.Paths.Transcriptions, a.cfg.Paths.Summaries)
	}
	if len(args) != 1 {
		return errUsage
	}

	out := a.out
	if out == "" {
		name := strings.TrimSuffix(fileutil.Stem(args[0]), "_diarized")
		out = filepath.Join(a.cfg.Paths.Summaries, name+".txt")
	}
	if err := s.SummarizeFile(ctx, args[0], out); err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func renderFlags(fs *flag.FlagSet) func(*app) {
	out := fs.String("out", "", "report path; the extension picks pdf, png or docx")
	return func(a *app) { a.out = *out }
}

func runRender(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	out := a.out
	if out == "" {
		out = filepath.Join(a.cfg.Paths.Reports, fileutil.Stem(args[0])+"."+a.cfg.Report.Format)
	}
	if err := report.New(a.cfg.Report, a.logger).RenderFile(ctx, args[0], out); err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runProcess(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	return processFiles(ctx, a, args)
}

// processFiles runs every file concurrently; the processor bounds how many
// actually proceed at once.
func processFiles(ctx context.Context, a *app, files []string) error {
	if err := a.ensureDirectories(); err != nil {
		return err
	}
	proc, err := a.processor(ctx)
	if err != nil {
		return err
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, f := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := proc.Process(ctx, f)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", f, err))
				mu.Unlock()
				return
			}
			fmt.Println(res.Report)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

func runWatch(ctx context.Context, a *app, _ []string) error {
	if err := a.ensureDirectories(); err != nil {
		return err
	}
	proc, err := a.processor(ctx)
	if err != nil {
		return err
	}

	handler := func(ctx context.Context, path string) error {
		_, err := proc.Process(ctx, path)
		return err
	}
	w, err := watcher.New(a.cfg.Paths.Recordings, handler, a.logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.logger.Info(ctx, "========================================")
	a.logger.Info(ctx, "minutes is ready!")
	a.logger.Info(ctx, "Monitoring: %s", a.cfg.Paths.Recordings)
	a.logger.Info(ctx, "Reports: %s (%s)", a.cfg.Paths.Reports, a.cfg.Report.Format)
	a.logger.Info(ctx, "Backends: %s transcription, %s diarization, %s summaries",
		a.cfg.Transcription.Backend, a.cfg.Diarization.Backend, a.cfg.Summarizer.Backend)
	a.logger.Info(ctx, "Concurrent: %d recordings at once", a.cfg.Performance.MaxConcurrent)
	a.logger.Info(ctx, "Press Ctrl+C to stop")
	a.logger.Info(ctx, "========================================")

	err = w.Start(ctx)
	a.logger.Info(ctx, "minutes stopped")
	return err
}
