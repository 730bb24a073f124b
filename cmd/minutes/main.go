package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/minutes/internal/config"
	"github.com/nguyentantai21042004/minutes/internal/logger"
)

const usage = `minutes turns recorded consultations into branded reports.

Usage:
  minutes <command> [flags] [args]

Commands:
  record      record from the default microphone until Ctrl+C
  level       show the microphone input level
  transcribe  transcribe an audio file to transcriptions/<name>.txt
  diarize     attach speaker labels to a transcript (<audio.wav> <transcript.txt>)
  summarize   summarize a diarized transcript (or -all)
  render      render a summary text file as pdf, png or docx
  process     run the whole pipeline on audio files
  watch       process every new recording dropped into the recordings folder

Every command accepts -config (default config.yaml).
`

type command func(ctx context.Context, app *app, args []string) error

var commands = map[string]struct {
	run   command
	flags func(fs *flag.FlagSet) func(*app)
}{
	"record":     {run: runRecord, flags: recordFlags},
	"level":      {run: runLevel, flags: levelFlags},
	"transcribe": {run: runTranscribe},
	"diarize":    {run: runDiarize},
	"summarize":  {run: runSummarize, flags: summarizeFlags},
	"render":     {run: runRender, flags: renderFlags},
	"process":    {run: runProcess},
	"watch":      {run: runWatch},
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "help" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	name := os.Args[1]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", name, usage)
		os.Exit(2)
	}

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to the YAML config file")
	var apply func(*app)
	if cmd.flags != nil {
		apply = cmd.flags(fs)
	}
	fs.Parse(os.Args[2:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	ctx, stop := signalContext()
	defer stop()

	log.Debug(ctx, "System: %s/%s, %d cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	a := &app{cfg: cfg, logger: log}
	if apply != nil {
		apply(a)
	}

	if err := cmd.run(ctx, a, fs.Args()); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "%s failed: %v", name, err)
		log.Sync()
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
