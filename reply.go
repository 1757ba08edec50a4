package termbg

import (
	"bytes"
	"regexp"
	"strconv"
)

// Reply grammars. Terminals end OSC replies with either BEL or ST
// (ESC \); xterm echoes whichever the query used, others always pick one.
// Some terminals append an alpha channel (rgba:r/g/b/a), which is ignored.
// 8-bit C1 introducers are rewritten to their 7-bit forms before matching.
var (
	colorReplyRe  = regexp.MustCompile(`\x1b\]11;rgba?:([0-9a-fA-F]{1,4})/([0-9a-fA-F]{1,4})/([0-9a-fA-F]{1,4})(?:/[0-9a-fA-F]{1,4})?(?:\x07|\x1b\\)`)
	cursorReplyRe = regexp.MustCompile(`\x1b\[\d+;\d+R`)
	statusReplyRe = regexp.MustCompile(`\x1b\[\d+n`)
)

const (
	// oscBackgroundQuery asks for the default background color (OSC 11).
	oscBackgroundQuery = "\x1b]11;?\x07"
	// cursorQuery is DSR 6. Every terminal answers it, so its reply marks
	// the end of whatever the terminal was going to say about OSC 11.
	cursorQuery = "\x1b[6n"
	// statusQuery is DSR 5, used to time a round trip.
	statusQuery = "\x1b[5n"
)

// backgroundQuery builds the bytes written for t. Multiplexers swallow
// OSC queries unless they are wrapped in a DCS passthrough envelope with
// every inner ESC doubled (tmux) or sent as-is (screen).
func backgroundQuery(t Term) []byte {
	var b bytes.Buffer
	switch t {
	case Tmux:
		b.WriteString("\x1bPtmux;\x1b")
		b.WriteString(oscBackgroundQuery)
		b.WriteString("\x1b\\")
	case Screen:
		b.WriteString("\x1bP")
		b.WriteString(oscBackgroundQuery)
		b.WriteString("\x1b\\")
	default:
		b.WriteString(oscBackgroundQuery)
	}
	b.WriteString(cursorQuery)
	return b.Bytes()
}

// replyScan is what the bytes read so far say about the query.
type replyScan struct {
	color      RGB
	haveColor  bool
	terminated bool
	// colorErr is set when the terminator arrived and no color reply
	// precedes it.
	colorErr error
}

// scanReply inspects everything read so far for a query sent to t.
// Multiplexers answer the cursor report themselves while the color reply
// travels through the outer terminal, so for them a cursor report does
// not end the wait and only the color reply does.
func scanReply(buf []byte, t Term) replyScan {
	var s replyScan
	buf = normalizeC1(buf)
	colorLoc := colorReplyRe.FindSubmatchIndex(buf)
	cursorLoc := cursorReplyRe.FindIndex(buf)
	multiplexed := t == Tmux || t == Screen

	if colorLoc != nil && (multiplexed || cursorLoc == nil || colorLoc[0] < cursorLoc[0]) {
		c, err := decodeX11Color(
			buf[colorLoc[2]:colorLoc[3]],
			buf[colorLoc[4]:colorLoc[5]],
			buf[colorLoc[6]:colorLoc[7]],
		)
		if err == nil {
			s.color = c
			s.haveColor = true
		}
	}
	if multiplexed {
		s.terminated = s.haveColor
		return s
	}
	if cursorLoc != nil {
		s.terminated = true
		if !s.haveColor {
			s.colorErr = errorf(KindUnrecognized, "query", "no background color before cursor report in %q", buf)
		}
	}
	return s
}

// normalizeC1 maps the 8-bit OSC introducer (0x9d) and string
// terminator (0x9c) to ESC ] and ESC \.
func normalizeC1(buf []byte) []byte {
	if bytes.IndexByte(buf, 0x9d) < 0 && bytes.IndexByte(buf, 0x9c) < 0 {
		return buf
	}
	buf = bytes.ReplaceAll(buf, []byte{0x9d}, []byte("\x1b]"))
	return bytes.ReplaceAll(buf, []byte{0x9c}, []byte("\x1b\\"))
}

// decodeX11Color converts the hex groups of an rgb: color to 16-bit
// channels. A group of n digits is treated as the high-order digits of a
// 4-digit value, so "f", "ff" and "ff00" all land near the same magnitude.
func decodeX11Color(r, g, b []byte) (RGB, error) {
	rv, err := decodeHexChannel(r)
	if err != nil {
		return RGB{}, err
	}
	gv, err := decodeHexChannel(g)
	if err != nil {
		return RGB{}, err
	}
	bv, err := decodeHexChannel(b)
	if err != nil {
		return RGB{}, err
	}
	return RGB{R: rv, G: gv, B: bv}, nil
}

func decodeHexChannel(digits []byte) (uint16, error) {
	n := len(digits)
	if n < 1 || n > 4 {
		return 0, errorf(KindUnrecognized, "parse", "channel %q must have 1-4 hex digits", digits)
	}
	v, err := strconv.ParseUint(string(digits), 16, 16)
	if err != nil {
		return 0, newError(KindUnrecognized, "parse", err)
	}
	return uint16(v << (4 * (4 - n))), nil
}

// hasStatusReply reports whether buf holds a DSR status or cursor reply.
func hasStatusReply(buf []byte) bool {
	return statusReplyRe.Match(buf) || cursorReplyRe.Match(buf)
}
