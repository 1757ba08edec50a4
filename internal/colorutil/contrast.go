package colorutil

import "math"

// RGB holds 16-bit channels, the precision terminals report colors in.
type RGB struct {
	R uint16
	G uint16
	B uint16
}

var (
	black = RGB{0, 0, 0}
	white = RGB{0xffff, 0xffff, 0xffff}
)

func unit(v uint16) float64 {
	return float64(v) / 0xffff
}

// Luma returns the ITU-R BT.601 luma of c, in [0,1].
func Luma(c RGB) float64 {
	return 0.299*unit(c.R) + 0.587*unit(c.G) + 0.114*unit(c.B)
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func luminance(rgb RGB) float64 {
	r := srgbToLinear(unit(rgb.R))
	g := srgbToLinear(unit(rgb.G))
	b := srgbToLinear(unit(rgb.B))
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func ContrastRatio(fg, bg RGB) float64 {
	l1 := luminance(fg)
	l2 := luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// AutoTextColor picks black or white, whichever reads better on bg.
func AutoTextColor(bg RGB) RGB {
	crBlack := ContrastRatio(black, bg)
	crWhite := ContrastRatio(white, bg)
	if crBlack >= 4.5 || crBlack >= crWhite {
		return black
	}
	return white
}
