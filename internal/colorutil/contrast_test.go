package colorutil

import "testing"

// from8 widens 8-bit components exactly (0xff -> 0xffff).
func from8(r, g, b uint8) RGB {
	return RGB{uint16(r) * 257, uint16(g) * 257, uint16(b) * 257}
}

func TestContrastRatio(t *testing.T) {
	cases := []struct {
		name     string
		fg, bg   RGB
		minRatio float64
	}{
		{"blackOnWhite", from8(0, 0, 0), from8(255, 255, 255), 4.5},
		{"whiteOnBlack", from8(255, 255, 255), from8(0, 0, 0), 4.5},
		{"darkRedOnWhite", from8(185, 28, 28), from8(255, 255, 255), 4.5},
		{"amberOnBlack", from8(245, 158, 11), from8(17, 24, 39), 4.5},
	}
	for _, tc := range cases {
		ratio := ContrastRatio(tc.fg, tc.bg)
		if ratio < tc.minRatio {
			t.Fatalf("%s contrast ratio %.2f < %.2f", tc.name, ratio, tc.minRatio)
		}
	}
}

func TestAutoTextColor(t *testing.T) {
	cases := []struct {
		name string
		bg   RGB
		want RGB
	}{
		{"lightBackground", from8(255, 247, 237), black},
		{"darkBackground", from8(15, 23, 42), white},
		{"medium", from8(120, 113, 108), white},
	}
	for _, tc := range cases {
		got := AutoTextColor(tc.bg)
		if got != tc.want {
			t.Fatalf("%s AutoTextColor=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestLuma(t *testing.T) {
	cases := []struct {
		name string
		c    RGB
		want float64
	}{
		{"black", black, 0},
		{"white", white, 1},
		{"pureRed", RGB{0xffff, 0, 0}, 0.299},
		{"pureGreen", RGB{0, 0xffff, 0}, 0.587},
		{"pureBlue", RGB{0, 0, 0xffff}, 0.114},
	}
	for _, tc := range cases {
		got := Luma(tc.c)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("%s Luma=%v want %v", tc.name, got, tc.want)
		}
	}
}
