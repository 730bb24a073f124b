package report

import "context"

// Reporter turns a summary text file into a finished report.
type Reporter interface {
	// RenderFile reads inPath and writes the report to outPath. The format
	// follows outPath's extension, or the configured default when the
	// extension is not one of .pdf, .png or .docx.
	RenderFile(ctx context.Context, inPath, outPath string) error
}
