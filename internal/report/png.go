package report

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

type faceKey struct {
	face Face
	size float64
}

type pngCanvas struct {
	pages  []*gg.Context
	width  float64
	height float64
	scale  float64
	fonts  map[Face]*truetype.Font
	faces  map[faceKey]font.Face
	stroke Color
	lineW  float64
	path   string
}

// NewPNGCanvas rasterizes pages at dpi. Save writes one file per page named
// <stem>-01.png, <stem>-02.png and so on next to path.
func NewPNGCanvas(path string, width, height, dpi float64, fonts Fonts) (Canvas, error) {
	regular, err := parseFont(fonts.Regular)
	if err != nil {
		return nil, err
	}
	bold, err := parseFont(fonts.Bold)
	if err != nil {
		return nil, err
	}
	if dpi <= 0 {
		dpi = 72
	}

	c := &pngCanvas{
		width:  width,
		height: height,
		scale:  dpi / 72,
		fonts:  map[Face]*truetype.Font{Regular: regular, Bold: bold},
		faces:  make(map[faceKey]font.Face),
		lineW:  1,
		path:   path,
	}
	c.newPage()
	return c, nil
}

func parseFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF %s: %w", path, err)
	}
	return f, nil
}

func (c *pngCanvas) newPage() {
	dc := gg.NewContext(c.px(c.width), c.px(c.height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	c.pages = append(c.pages, dc)
}

func (c *pngCanvas) current() *gg.Context {
	return c.pages[len(c.pages)-1]
}

func (c *pngCanvas) px(v float64) int {
	return int(math.Round(v * c.scale))
}

func (c *pngCanvas) face(face Face, size float64) font.Face {
	key := faceKey{face: face, size: size}
	if f, ok := c.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(c.fonts[face], &truetype.Options{
		Size:    size,
		DPI:     72 * c.scale,
		Hinting: font.HintingNone,
	})
	c.faces[key] = f
	return f
}

func (c *pngCanvas) PageSize() (float64, float64) {
	return c.width, c.height
}

func (c *pngCanvas) StringWidth(s string, face Face, size float64) float64 {
	dc := c.current()
	dc.SetFontFace(c.face(face, size))
	w, _ := dc.MeasureString(s)
	return w / c.scale
}

func (c *pngCanvas) DrawString(x, y float64, s string, face Face, size float64) {
	dc := c.current()
	dc.SetFontFace(c.face(face, size))
	dc.SetRGB(0, 0, 0)
	dc.DrawString(s, x*c.scale, (c.height-y)*c.scale)
}

func (c *pngCanvas) SetStrokeColor(col Color) {
	c.stroke = col
}

func (c *pngCanvas) SetLineWidth(w float64) {
	c.lineW = w
}

func (c *pngCanvas) Line(x1, y1, x2, y2 float64) {
	dc := c.current()
	dc.SetRGB(c.stroke.R, c.stroke.G, c.stroke.B)
	dc.SetLineWidth(c.lineW * c.scale)
	dc.DrawLine(x1*c.scale, (c.height-y1)*c.scale, x2*c.scale, (c.height-y2)*c.scale)
	dc.Stroke()
}

func (c *pngCanvas) DrawImage(path string, x, y, w, h float64) error {
	img, err := gg.LoadImage(path)
	if err != nil {
		return fmt.Errorf("load image %s: %w", path, err)
	}
	b := img.Bounds()
	fx, fy, fw, fh := fitBox(b.Dx(), b.Dy(), x, y, w, h)

	dst := image.NewRGBA(image.Rect(0, 0, c.px(fw), c.px(fh)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	c.current().DrawImage(dst, c.px(fx), c.px(c.height-(fy+fh)))
	return nil
}

func (c *pngCanvas) ShowPage() {
	c.newPage()
}

func (c *pngCanvas) Save() error {
	for i, dc := range c.pages {
		name := PagePath(c.path, i+1)
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := dc.SavePNG(name); err != nil {
			return fmt.Errorf("write page %d: %w", i+1, err)
		}
	}
	return nil
}

// PagePath returns the file name of page n for a PNG report at path.
func PagePath(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%02d%s", strings.TrimSuffix(path, ext), n, ".png")
}
