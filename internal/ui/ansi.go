package ui

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray    = "\033[90m"
	fgGreen   = "\033[32m"
	fgYellow  = "\033[33m"
	fgBlue    = "\033[34m"
	fgRed     = "\033[31m"
	fgMagenta = "\033[35m"

	symCheck = "✔"
	symCross = "✖"
	symInfo  = "•"
)

// disableColor is set by the mono theme.
var disableColor bool

// colorOutput reports whether stdout takes escape codes. NO_COLOR wins.
var colorOutput = func() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// C wraps s in color. Plain s comes back for the mono theme, an empty
// color, or output that is not a terminal.
func C(color, s string) string {
	if disableColor || color == "" || !colorOutput() {
		return s
	}
	return color + s + reset
}

// Faint dims s, for secondary text such as row numbers.
func Faint(s string) string { return C(dim, s) }

func OK(msg string)   { fmt.Println(C(current.Success, symCheck+" "+msg)) }
func Info(msg string) { fmt.Println(C(current.Muted, symInfo+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(os.Stderr, C(current.Error, symCross+" "+msg)) }
