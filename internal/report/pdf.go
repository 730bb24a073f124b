package report

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

const pdfFontFamily = "report"

type pdfCanvas struct {
	pdf    *fpdf.Fpdf
	width  float64
	height float64
	path   string
}

// NewPDFCanvas starts a single-page PDF of the given size in points with
// both fonts embedded.
func NewPDFCanvas(path string, width, height float64, fonts Fonts) (Canvas, error) {
	regular, err := os.ReadFile(fonts.Regular)
	if err != nil {
		return nil, fmt.Errorf("read regular font: %w", err)
	}
	bold, err := os.ReadFile(fonts.Bold)
	if err != nil {
		return nil, fmt.Errorf("read bold font: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", regular)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", bold)
	pdf.AddPage()
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("init pdf: %w", err)
	}

	return &pdfCanvas{pdf: pdf, width: width, height: height, path: path}, nil
}

func (c *pdfCanvas) PageSize() (float64, float64) {
	return c.width, c.height
}

func (c *pdfCanvas) setFont(face Face, size float64) {
	style := ""
	if face == Bold {
		style = "B"
	}
	c.pdf.SetFont(pdfFontFamily, style, size)
}

func (c *pdfCanvas) StringWidth(s string, face Face, size float64) float64 {
	c.setFont(face, size)
	return c.pdf.GetStringWidth(s)
}

func (c *pdfCanvas) DrawString(x, y float64, s string, face Face, size float64) {
	c.setFont(face, size)
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.Text(x, c.height-y, s)
}

func (c *pdfCanvas) SetStrokeColor(col Color) {
	c.pdf.SetDrawColor(channel(col.R), channel(col.G), channel(col.B))
}

func (c *pdfCanvas) SetLineWidth(w float64) {
	c.pdf.SetLineWidth(w)
}

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, c.height-y1, x2, c.height-y2)
}

func (c *pdfCanvas) DrawImage(path string, x, y, w, h float64) error {
	iw, ih, err := imageSize(path)
	if err != nil {
		return err
	}
	fx, fy, fw, fh := fitBox(iw, ih, x, y, w, h)
	c.pdf.ImageOptions(path, fx, c.height-(fy+fh), fw, fh, false, fpdf.ImageOptions{}, 0, "")
	return c.pdf.Error()
}

func (c *pdfCanvas) ShowPage() {
	c.pdf.AddPage()
}

func (c *pdfCanvas) Save() error {
	if err := c.pdf.OutputFileAndClose(c.path); err != nil {
		return fmt.Errorf("write pdf %s: %w", c.path, err)
	}
	return nil
}

func channel(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int(v*255 + 0.5)
}
