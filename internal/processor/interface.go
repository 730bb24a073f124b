package processor

import "context"

// Processor runs a recording through the whole minutes pipeline.
type Processor interface {
	Process(ctx context.Context, audioPath string) (*Result, error)
}

// Result lists the files one Process call produced.
type Result struct {
	Transcript string
	Diarized   string
	Summary    string
	Report     string
	Archived   string
}
