// Package termbg detects a terminal's background color and whether it is
// light or dark.
//
// Detection tries, in order:
//   - the Windows console API, on legacy consoles only;
//   - an OSC 11 query written to the terminal, followed by a cursor
//     position report whose reply marks the end of the answer;
//   - the COLORFGBG environment variable exported by rxvt and friends.
//
// Queries run with the terminal in raw mode. The previous mode is
// restored before any call returns, and a terminal that never answers
// costs the caller at most the timeout it passed in. Detection on
// redirected standard streams fails with ErrNotATerminal.
//
//	theme, err := termbg.DetectTheme(100 * time.Millisecond)
//	if err != nil {
//		theme = termbg.Dark
//	}
package termbg
