//go:build !windows

package termbg

import "os"

// fromConsole is unavailable: only Windows has a console color API.
func fromConsole(*os.File, map[string]string) (RGB, error) {
	return RGB{}, errConsoleUnavailable
}

func consoleOnly(map[string]string) bool { return false }
