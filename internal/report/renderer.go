package report

import (
	"fmt"
	"strings"
)

// Renderer flows a Document across the pages of a Canvas.
type Renderer struct {
	canvas Canvas
	layout Layout
	width  float64
	height float64
	pages  int
	err    error
}

func NewRenderer(c Canvas, l Layout) *Renderer {
	w, h := c.PageSize()
	return &Renderer{canvas: c, layout: l, width: w, height: h}
}

// Pages reports how many pages have been started so far.
func (r *Renderer) Pages() int {
	return r.pages
}

func (r *Renderer) usableWidth() float64 {
	return r.width - r.layout.LeftMargin - r.layout.RightMargin
}

// Render draws the whole document. The first image error is returned after
// the layout completes.
func (r *Renderer) Render(doc Document) error {
	l := r.layout
	y := r.startPage()

	for _, line := range doc.Lines {
		if y < l.BottomMargin+l.FooterReserve {
			r.drawFooter()
			r.canvas.ShowPage()
			y = r.startPage()
		}

		switch line.Kind {
		case Heading:
			y -= l.HeadingLineHeight
			y -= l.HeadingSpacing * l.HeadingLineHeight
			y = r.WrapText(line.Text, l.LeftMargin, y, r.usableWidth(), l.HeadingLineHeight, l.HeadingFontSize)
			y -= l.HeadingSpacing * l.HeadingLineHeight
		case Bullet:
			y = r.WrapText(BulletGlyph+line.Text, l.LeftMargin+l.BulletIndent, y,
				r.usableWidth()-l.BulletIndent, l.BodyLineHeight, l.BodyFontSize)
		case Blank:
			y -= l.BodyLineHeight * blankLineFactor
		default:
			y = r.WrapText(line.Text, l.LeftMargin, y, r.usableWidth(), l.BodyLineHeight, l.BodyFontSize)
		}
	}

	r.drawFooter()
	if r.err != nil {
		return fmt.Errorf("render: %w", r.err)
	}
	return nil
}

// WrapText draws text starting at (x, y) and returns the baseline for the
// next line. Words never split; a word wider than width gets a line of its own.
func (r *Renderer) WrapText(text string, x, y, width, lineHeight, size float64) float64 {
	cx, cy := x, y
	for _, run := range SplitEmphasis(text) {
		face := Regular
		if run.Bold {
			face = Bold
		}
		for _, word := range strings.Split(run.Text, " ") {
			word += " "
			w := r.canvas.StringWidth(word, face, size)
			if cx > x && (cx-x)+w > width {
				cy -= lineHeight
				cx = x
			}
			r.canvas.DrawString(cx, cy, word, face, size)
			cx += w
		}
	}
	return cy - lineHeight
}

func (r *Renderer) startPage() float64 {
	r.pages++
	return r.drawHeader()
}

func (r *Renderer) drawHeader() float64 {
	l := r.layout
	logoX := r.width - l.RightMargin - l.LogoWidth + l.LogoOffset
	logoY := r.height - l.TopMargin - l.LogoHeight
	if err := r.canvas.DrawImage(l.LogoPath, logoX, logoY, l.LogoWidth, l.LogoHeight); err != nil && r.err == nil {
		r.err = err
	}

	ruleY := logoY - headerRuleGap
	r.rule(ruleY)
	return ruleY - headerContent
}

func (r *Renderer) drawFooter() {
	l := r.layout
	ruleY := l.BottomMargin + footerRuleLift
	r.rule(ruleY)

	textY := ruleY - footerTextDrop
	size := l.FooterFontSize

	addrW := r.canvas.StringWidth(l.Address, Regular, size)
	r.canvas.DrawString(l.LeftMargin, textY, l.Address, Regular, size)

	emailW := r.canvas.StringWidth(l.Email, Regular, size)
	emailX := r.width - l.RightMargin - emailW
	r.canvas.DrawString(emailX, textY, l.Email, Regular, size)

	phoneW := r.canvas.StringWidth(l.Phone, Regular, size)
	phoneX := (l.LeftMargin+addrW+emailX)/2 - phoneW/2
	r.canvas.DrawString(phoneX, textY, l.Phone, Regular, size)
}

func (r *Renderer) rule(y float64) {
	r.canvas.SetStrokeColor(r.layout.BrandColor)
	r.canvas.SetLineWidth(r.layout.LineWidth)
	r.canvas.Line(r.layout.LeftMargin, y, r.width-r.layout.RightMargin, y)
	r.canvas.SetStrokeColor(Black)
	r.canvas.SetLineWidth(1)
}
