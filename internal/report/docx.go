package report

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxTitleSize   = 16
	docxHeadingSize = 14
	docxBodySize    = 12
)

// WriteDOCX exports doc as a Word file. Layout is left to the word
// processor; tags become paragraph styling and bold runs are kept.
func WriteDOCX(doc Document, title, fontName, path string) error {
	out, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new docx: %w", err)
	}

	if title != "" {
		addDocxRun(out.AddParagraph(""), fontName, title, true, docxTitleSize)
	}

	for _, line := range doc.Lines {
		p := out.AddParagraph("")
		switch line.Kind {
		case Heading:
			for _, run := range SplitEmphasis(line.Text) {
				addDocxRun(p, fontName, run.Text, true, docxHeadingSize)
			}
		case Bullet:
			addDocxRuns(p, fontName, BulletGlyph+line.Text)
		case Blank:
		default:
			addDocxRuns(p, fontName, line.Text)
		}
	}

	if err := out.SaveTo(path); err != nil {
		return fmt.Errorf("write docx %s: %w", path, err)
	}
	return nil
}

func addDocxRuns(p *docx.Paragraph, fontName, text string) {
	for _, run := range SplitEmphasis(text) {
		if run.Text == "" {
			continue
		}
		addDocxRun(p, fontName, run.Text, run.Bold, docxBodySize)
	}
}

func addDocxRun(p *docx.Paragraph, fontName, text string, bold bool, size uint64) {
	r := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		r.Bold(true)
	}
}
