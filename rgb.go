package termbg

import "fmt"

// RGB is a background color with 16 bits per channel. Replies that use
// fewer hex digits per channel are scaled up to this range.
type RGB struct {
	R uint16
	G uint16
	B uint16
}

// String renders the color in the X11 form terminals use in OSC replies.
func (c RGB) String() string {
	return fmt.Sprintf("rgb:%04x/%04x/%04x", c.R, c.G, c.B)
}

// Hex renders the 8-bit approximation as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R>>8, c.G>>8, c.B>>8)
}

// rgb8 scales 8-bit table entries onto the 16-bit range the same way
// every palette lookup in this package does.
func rgb8(r, g, b uint8) RGB {
	return RGB{R: uint16(r) << 8, G: uint16(g) << 8, B: uint16(b) << 8}
}
