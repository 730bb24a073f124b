package report

import (
	"runtime"

	"github.com/nguyentantai21042004/minutes/internal/fileutil"
)

// Fonts names the regular and bold TrueType files.
type Fonts struct {
	Regular string
	Bold    string
}

// ResolveFonts returns the configured pair when the regular file exists, and
// the platform pair otherwise. The bool reports whether the fallback was used.
func ResolveFonts(configured Fonts) (Fonts, bool) {
	if fileutil.Exists(configured.Regular) {
		if !fileutil.Exists(configured.Bold) {
			configured.Bold = configured.Regular
		}
		return configured, false
	}
	return platformFonts(runtime.GOOS), true
}

func platformFonts(goos string) Fonts {
	switch goos {
	case "windows":
		return Fonts{Regular: `C:\Windows\Fonts\malgun.ttf`, Bold: `C:\Windows\Fonts\malgunbd.ttf`}
	case "darwin":
		return Fonts{
			Regular: "/System/Library/Fonts/Supplemental/AppleGothic.ttf",
			Bold:    "/System/Library/Fonts/Supplemental/AppleGothic.ttf",
		}
	default:
		nanum := Fonts{
			Regular: "/usr/share/fonts/truetype/nanum/NanumGothic.ttf",
			Bold:    "/usr/share/fonts/truetype/nanum/NanumGothicBold.ttf",
		}
		if fileutil.Exists(nanum.Regular) {
			return nanum
		}
		return Fonts{
			Regular: "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			Bold:    "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		}
	}
}
