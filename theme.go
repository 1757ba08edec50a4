package termbg

import "github.com/phyten/termbg/internal/colorutil"

// Theme is the light/dark classification of a background color.
type Theme int

// Dark is also what callers should assume when detection fails.
const (
	Dark Theme = iota
	Light
)

func (t Theme) String() string {
	if t == Light {
		return "Light"
	}
	return "Dark"
}

// lightThreshold is exclusive: a luma of exactly 0.5 is Dark.
const lightThreshold = 0.5

// Classify derives the theme of c from its BT.601 luma.
func Classify(c RGB) Theme {
	return themeForLuma(colorutil.Luma(colorutil.RGB{R: c.R, G: c.G, B: c.B}))
}

func themeForLuma(y float64) Theme {
	if y > lightThreshold {
		return Light
	}
	return Dark
}
