package platform

import (
	"os"
	"runtime"
)

// LaunchedFromCmd reports whether the process was started from cmd.exe.
// POSIX shells (including Git Bash and MSYS on Windows) export "_"; cmd.exe
// does not.
func LaunchedFromCmd() bool {
	return launchedFromCmd(runtime.GOOS, os.LookupEnv)
}

func launchedFromCmd(goos string, lookup func(string) (string, bool)) bool {
	if goos != "windows" {
		return false
	}
	_, ok := lookup("_")
	return !ok
}

// Prompt returns the shell prompt glyph to show in printed instructions.
func Prompt(fromCmd bool) string {
	if fromCmd {
		return ">"
	}
	return "$"
}
