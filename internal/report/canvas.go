package report

// Face selects the regular or bold font.
type Face int

const (
	Regular Face = iota
	Bold
)

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

var Black = Color{}

// Canvas is a page-oriented drawing surface. Units are points and the origin
// is the bottom-left corner of the page; y grows upwards.
type Canvas interface {
	PageSize() (w, h float64)
	StringWidth(s string, face Face, size float64) float64
	DrawString(x, y float64, s string, face Face, size float64)
	SetStrokeColor(c Color)
	SetLineWidth(w float64)
	Line(x1, y1, x2, y2 float64)
	// DrawImage fits the image inside the w×h box at (x, y), keeping its
	// aspect ratio and centring it.
	DrawImage(path string, x, y, w, h float64) error
	// ShowPage closes the current page and starts a new blank one.
	ShowPage()
	Save() error
}
