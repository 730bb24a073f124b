package report

import "unicode/utf8"

type drawOp struct {
	Kind string
	X, Y float64
	Text string
	Face Face
	Size float64
}

type lineOp struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	Width          float64
}

type imageOp struct {
	Path       string
	X, Y, W, H float64
}

// fakeCanvas records drawing calls. Every rune is half the font size wide.
type fakeCanvas struct {
	w, h     float64
	stroke   Color
	lineW    float64
	page     int
	draws    []drawOp
	lines    []lineOp
	images   []imageOp
	pageOf   []int
	imageErr error
	saved    bool
}

func newFakeCanvas(w, h float64) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, lineW: 1}
}

func (c *fakeCanvas) PageSize() (float64, float64) { return c.w, c.h }

func (c *fakeCanvas) StringWidth(s string, _ Face, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.5
}

func (c *fakeCanvas) DrawString(x, y float64, s string, face Face, size float64) {
	c.draws = append(c.draws, drawOp{Kind: "text", X: x, Y: y, Text: s, Face: face, Size: size})
	c.pageOf = append(c.pageOf, c.page)
}

func (c *fakeCanvas) SetStrokeColor(col Color) { c.stroke = col }
func (c *fakeCanvas) SetLineWidth(w float64)   { c.lineW = w }

func (c *fakeCanvas) Line(x1, y1, x2, y2 float64) {
	c.lines = append(c.lines, lineOp{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c.stroke, Width: c.lineW})
}

func (c *fakeCanvas) DrawImage(path string, x, y, w, h float64) error {
	c.images = append(c.images, imageOp{Path: path, X: x, Y: y, W: w, H: h})
	return c.imageErr
}

func (c *fakeCanvas) ShowPage() { c.page++ }

func (c *fakeCanvas) Save() error {
	c.saved = true
	return nil
}

// textsOn returns the drawn strings on page p, in order.
func (c *fakeCanvas) textsOn(p int) []string {
	var out []string
	for i, d := range c.draws {
		if c.pageOf[i] == p {
			out = append(out, d.Text)
		}
	}
	return out
}

func testLayout() Layout {
	return Layout{
		TopMargin:         10,
		BottomMargin:      10,
		LeftMargin:        10,
		RightMargin:       10,
		BodyFontSize:      10,
		BodyLineHeight:    20,
		HeadingFontSize:   10,
		HeadingLineHeight: 20,
		HeadingSpacing:    0.5,
		BulletIndent:      5,
		FooterReserve:     50,
		FooterFontSize:    6,
		BrandColor:        Color{R: 0.7, G: 0.9, B: 0.7},
		LineWidth:         2,
		LogoPath:          "logo.png",
		LogoWidth:         20,
		LogoHeight:        10,
		Address:           "addr",
		Phone:             "p",
		Email:             "e@x",
	}
}
