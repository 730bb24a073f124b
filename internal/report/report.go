package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/minutes/internal/fileutil"
)

const docxFontName = "Malgun Gothic"

// FormatFor picks the output format from the file extension, falling back to
// def.
func FormatFor(path, def string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf", ".png", ".docx":
		return ext[1:]
	}
	return def
}

func (r *implReporter) RenderFile(ctx context.Context, inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open summary: %w", err)
	}
	doc, err := ParseDocument(f)
	f.Close()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	format := FormatFor(outPath, r.cfg.Format)
	if format == "docx" {
		if err := WriteDOCX(doc, fileutil.Stem(inPath), docxFontName, outPath); err != nil {
			return err
		}
		r.logger.Info(ctx, "Report written: %s (%d lines)", outPath, len(doc.Lines))
		return nil
	}

	if !fileutil.Exists(r.layout.LogoPath) {
		return fmt.Errorf("logo image not found: %s", r.layout.LogoPath)
	}

	fonts, fellBack := ResolveFonts(Fonts{Regular: r.cfg.Fonts.Regular, Bold: r.cfg.Fonts.Bold})
	if fellBack {
		r.logger.Warn(ctx, "Font %s not found, using %s", r.cfg.Fonts.Regular, fonts.Regular)
	}

	canvas, err := r.newCanvas(format, outPath, fonts)
	if err != nil {
		return err
	}

	renderer := NewRenderer(canvas, r.layout)
	if err := renderer.Render(doc); err != nil {
		return err
	}
	if err := canvas.Save(); err != nil {
		return err
	}

	r.logger.Info(ctx, "Report written: %s (%d pages)", outPath, renderer.Pages())
	return nil
}

func (r *implReporter) newCanvas(format, outPath string, fonts Fonts) (Canvas, error) {
	switch format {
	case "pdf":
		return NewPDFCanvas(outPath, r.cfg.PageWidth, r.cfg.PageHeight, fonts)
	case "png":
		return NewPNGCanvas(outPath, r.cfg.PageWidth, r.cfg.PageHeight, r.cfg.DPI, fonts)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}
