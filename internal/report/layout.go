package report

import "github.com/nguyentantai21042004/minutes/internal/config"

// Distances from the header and footer rules, in points.
const (
	headerRuleGap   = 10
	headerContent   = 30
	footerRuleLift  = 20
	footerTextDrop  = 15
	blankLineFactor = 0.5
)

// Layout holds every page measurement the renderer needs. Page size comes
// from the Canvas.
type Layout struct {
	TopMargin    float64
	BottomMargin float64
	LeftMargin   float64
	RightMargin  float64

	BodyFontSize      float64
	BodyLineHeight    float64
	HeadingFontSize   float64
	HeadingLineHeight float64
	HeadingSpacing    float64
	BulletIndent      float64
	FooterReserve     float64
	FooterFontSize    float64

	BrandColor Color
	LineWidth  float64

	LogoPath   string
	LogoWidth  float64
	LogoHeight float64
	LogoOffset float64

	Address string
	Phone   string
	Email   string
}

// LayoutFromConfig copies the validated report section into a Layout.
func LayoutFromConfig(cfg config.ReportConfig) Layout {
	return Layout{
		TopMargin:         cfg.TopMargin,
		BottomMargin:      cfg.BottomMargin,
		LeftMargin:        cfg.LeftMargin,
		RightMargin:       cfg.RightMargin,
		BodyFontSize:      cfg.BodyFontSize,
		BodyLineHeight:    cfg.BodyLineHeight,
		HeadingFontSize:   cfg.HeadingFontSize,
		HeadingLineHeight: cfg.HeadingLineHeight,
		HeadingSpacing:    cfg.HeadingSpacing,
		BulletIndent:      cfg.BulletIndent,
		FooterReserve:     cfg.FooterReserve,
		FooterFontSize:    cfg.FooterFontSize,
		BrandColor:        Color{R: cfg.BrandColor[0], G: cfg.BrandColor[1], B: cfg.BrandColor[2]},
		LineWidth:         cfg.LineWidth,
		LogoPath:          cfg.Logo.Path,
		LogoWidth:         cfg.Logo.Width,
		LogoHeight:        cfg.Logo.Height,
		LogoOffset:        cfg.Logo.Offset,
		Address:           cfg.Footer.Address,
		Phone:             cfg.Footer.Phone,
		Email:             cfg.Footer.Email,
	}
}
