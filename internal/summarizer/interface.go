package summarizer

import "context"

// Summarizer turns a speaker-labelled consultation transcript into a
// section-tagged summary the report renderer can lay out.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	// SummarizeFile reads inPath and writes the summary to outPath.
	SummarizeFile(ctx context.Context, inPath, outPath string) error
	// SummarizeAll summarizes every *_diarized.txt in srcDir that has no
	// summary in destDir yet.
	SummarizeAll(ctx context.Context, srcDir, destDir string) error
}

// generator is one LLM backend.
type generator interface {
	Generate(ctx context.Context, instructions, transcript string) (string, error)
}
