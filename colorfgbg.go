package termbg

import (
	"strconv"
	"strings"
)

// rxvtPalette is rxvt's default 16-color table, the terminal family that
// exports COLORFGBG.
var rxvtPalette = [16]RGB{
	rgb8(0, 0, 0),       // black
	rgb8(205, 0, 0),     // red
	rgb8(0, 205, 0),     // green
	rgb8(205, 205, 0),   // yellow
	rgb8(0, 0, 238),     // blue
	rgb8(205, 0, 205),   // magenta
	rgb8(0, 205, 205),   // cyan
	rgb8(229, 229, 229), // white
	rgb8(127, 127, 127), // bright black
	rgb8(255, 0, 0),     // bright red
	rgb8(0, 255, 0),     // bright green
	rgb8(255, 255, 0),   // bright yellow
	rgb8(92, 92, 255),   // bright blue
	rgb8(255, 0, 255),   // bright magenta
	rgb8(0, 255, 255),   // bright cyan
	rgb8(255, 255, 255), // bright white
}

// fromColorFGBG reads the background index from COLORFGBG. Both "fg;bg"
// and rxvt's "fg;default;bg" forms are accepted; the background is always
// the last field.
func fromColorFGBG(env map[string]string) (RGB, error) {
	const op = "COLORFGBG"
	raw, ok := env["COLORFGBG"]
	if !ok {
		return RGB{}, newError(KindUnsupported, op, nil)
	}
	parts := strings.Split(strings.TrimSpace(raw), ";")
	if len(parts) < 2 {
		return RGB{}, errorf(KindUnsupported, op, "malformed value %q", raw)
	}
	bgRaw := strings.TrimSpace(parts[len(parts)-1])
	idx, err := strconv.Atoi(bgRaw)
	if err != nil {
		return RGB{}, errorf(KindUnsupported, op, "malformed value %q", raw)
	}
	if idx < 0 || idx >= len(rxvtPalette) {
		return RGB{}, errorf(KindUnsupported, op, "background index %d out of range", idx)
	}
	return rxvtPalette[idx], nil
}
