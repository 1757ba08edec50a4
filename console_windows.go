//go:build windows

package termbg

import (
	"os"
	"sync"

	"golang.org/x/sys/windows"
)

// Console attribute bits for the background nibble.
const (
	backgroundBlue      = 0x0010
	backgroundGreen     = 0x0020
	backgroundRed       = 0x0040
	backgroundIntensity = 0x0080
)

// consolePalette is the legacy console's 16-color table, indexed by the
// background nibble (intensity, red, green, blue from high to low bit).
var consolePalette = [16]RGB{
	rgb8(0, 0, 0),       // 0000 black
	rgb8(0, 0, 128),     // 0001 blue
	rgb8(0, 128, 0),     // 0010 green
	rgb8(0, 128, 128),   // 0011 cyan
	rgb8(128, 0, 0),     // 0100 red
	rgb8(128, 0, 128),   // 0101 magenta
	rgb8(128, 128, 0),   // 0110 yellow
	rgb8(192, 192, 192), // 0111 white
	rgb8(128, 128, 128), // 1000 bright black
	rgb8(0, 0, 255),     // 1001 bright blue
	rgb8(0, 255, 0),     // 1010 bright green
	rgb8(0, 255, 255),   // 1011 bright cyan
	rgb8(255, 0, 0),     // 1100 bright red
	rgb8(255, 0, 255),   // 1101 bright magenta
	rgb8(255, 255, 0),   // 1110 bright yellow
	rgb8(255, 255, 255), // 1111 bright white
}

// fromConsole reads the background attribute of out's console buffer.
// It is only available on consoles without virtual terminal processing;
// VT-capable hosts ignore these attributes for their real background.
func fromConsole(out *os.File, env map[string]string) (RGB, error) {
	if out == nil || !consoleOnly(env) {
		return RGB{}, errConsoleUnavailable
	}
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(out.Fd()), &info); err != nil {
		return RGB{}, newError(KindIO, "console", err)
	}
	return consolePalette[consoleIndex(info.Attributes)], nil
}

func consoleIndex(attr uint16) int {
	idx := 0
	if attr&backgroundIntensity != 0 {
		idx |= 8
	}
	if attr&backgroundRed != 0 {
		idx |= 4
	}
	if attr&backgroundGreen != 0 {
		idx |= 2
	}
	if attr&backgroundBlue != 0 {
		idx |= 1
	}
	return idx
}

var (
	vtOnce    sync.Once
	vtEnabled bool
)

// enableVirtualTerminal turns on VT processing for stdout once per
// process and reports whether the console accepted it.
func enableVirtualTerminal() bool {
	vtOnce.Do(func() {
		h := windows.Handle(os.Stdout.Fd())
		var mode uint32
		if err := windows.GetConsoleMode(h, &mode); err != nil {
			return
		}
		if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
			vtEnabled = true
			return
		}
		vtEnabled = windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
	})
	return vtEnabled
}

// consoleOnly reports a Windows console that cannot take escape
// sequences. VS Code's terminal is xterm-compatible regardless.
func consoleOnly(env map[string]string) bool {
	if env["TERM_PROGRAM"] == "vscode" {
		return false
	}
	return !enableVirtualTerminal()
}
