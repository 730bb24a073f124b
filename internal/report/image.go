package report

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// fitBox scales an iw×ih image to the largest size that fits the w×h box and
// centres it there.
func fitBox(iw, ih int, x, y, w, h float64) (fx, fy, fw, fh float64) {
	if iw <= 0 || ih <= 0 {
		return x, y, w, h
	}
	scale := w / float64(iw)
	if s := h / float64(ih); s < scale {
		scale = s
	}
	fw = float64(iw) * scale
	fh = float64(ih) * scale
	return x + (w-fw)/2, y + (h-fh)/2, fw, fh
}
