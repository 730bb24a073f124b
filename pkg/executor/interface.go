package executor

import "context"

// Executor runs external programs such as ffmpeg, whisper.cpp and python.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir runs the command with dir as its working directory and
	// extra appended to the inherited environment.
	ExecuteInDir(ctx context.Context, dir string, extra []string, name string, args ...string) (string, error)
}
