package term

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var (
	lvl              = LevelInfo
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func SetLevel(level Level) {
	lvl = level
}

// SetOutput redirects the messages: debug and info to out, warnings and errors to errOut
func SetOutput(out, errOut io.Writer) {
	stdout = out
	stderr = errOut
}

func Debug(a ...interface{}) {
	printLine(LevelDebug, pterm.FgLightCyan, a...)
}

func Debugf(format string, a ...interface{}) {
	printFormat(LevelDebug, pterm.FgLightCyan, format, a...)
}

func Info(a ...interface{}) {
	printLine(LevelInfo, pterm.FgLightGreen, a...)
}

func Infof(format string, a ...interface{}) {
	printFormat(LevelInfo, pterm.FgLightGreen, format, a...)
}

func Warn(a ...interface{}) {
	printLine(LevelWarn, pterm.FgYellow, a...)
}

func Warnf(format string, a ...interface{}) {
	printFormat(LevelWarn, pterm.FgYellow, format, a...)
}

// Error is always displayed
func Error(a ...interface{}) {
	printLine(LevelError, pterm.FgLightRed, a...)
}

func Errorf(format string, a ...interface{}) {
	printFormat(LevelError, pterm.FgLightRed, format, a...)
}

func printLine(level Level, color pterm.Color, a ...interface{}) {
	if lvl > level {
		return
	}
	write(level, color, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
}

func printFormat(level Level, color pterm.Color, format string, a ...interface{}) {
	if lvl > level {
		return
	}
	write(level, color, fmt.Sprintf(format, a...))
}

func write(level Level, color pterm.Color, message string) {
	out := stdout
	if level >= LevelWarn {
		out = stderr
	}
	fmt.Fprintln(out, color.Sprint(message))
}
