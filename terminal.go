package termbg

import "strings"

// Term identifies the kind of terminal the process talks to. It only
// selects the query strategy.
type Term int

// Terminal kinds. Unknown means no terminal was identified.
const (
	Unknown Term = iota
	XtermCompatible
	Tmux
	Screen
	Emacs
	WindowsConsole
)

func (t Term) String() string {
	switch t {
	case XtermCompatible:
		return "XtermCompatible"
	case Tmux:
		return "Tmux"
	case Screen:
		return "Screen"
	case Emacs:
		return "Emacs"
	case WindowsConsole:
		return "Windows"
	default:
		return "Unknown"
	}
}

// identify classifies the terminal from environment markers.
//
// Priority order (first match wins):
//  1. tmux (TMUX, TERM=tmux*) and GNU screen (STY, TERM=screen*).
//  2. INSIDE_EMACS.
//  3. A Windows console without virtual terminal processing.
//  4. Any other interactive terminal is treated as xterm-compatible.
//  5. Unknown.
func identify(env map[string]string, interactive, consoleOnly bool) Term {
	termName := strings.ToLower(strings.TrimSpace(env["TERM"]))
	if _, ok := env["TMUX"]; ok || strings.HasPrefix(termName, "tmux") {
		return Tmux
	}
	if _, ok := env["STY"]; ok || strings.HasPrefix(termName, "screen") {
		return Screen
	}
	if _, ok := env["INSIDE_EMACS"]; ok {
		return Emacs
	}
	if consoleOnly && env["TERM_PROGRAM"] != "vscode" {
		return WindowsConsole
	}
	if interactive {
		return XtermCompatible
	}
	return Unknown
}
