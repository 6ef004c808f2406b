package lib

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

type Logger interface {
	Print(a ...any)
	Println(a ...any)
	Printf(format string, a ...any)
}

type NoLog struct{}

func (l *NoLog) Print(a ...any)                 {}
func (l *NoLog) Println(a ...any)               {}
func (l *NoLog) Printf(format string, a ...any) {}

// FileLogger appends timestamped lines to a log file kept across runs
type FileLogger struct {
	*log.Logger
	file io.Closer
}

// OpenFileLogger opens (or creates) the log file in append mode
func OpenFileLogger(filename string) (*FileLogger, error) {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
	}
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return &FileLogger{
		Logger: log.New(file, "", log.LstdFlags),
		file:   file,
	}, nil
}

func (l *FileLogger) Close() error {
	return l.file.Close()
}

type TestLogger struct {
	t      *testing.T
	prefix string
}

func NewTestLogger(t *testing.T, prefix string) *TestLogger {
	return &TestLogger{
		t:      t,
		prefix: prefix,
	}
}

func (l *TestLogger) Print(a ...any) {
	l.t.Helper()
	if l.prefix == "" {
		l.t.Log(a...)
	} else {
		l.t.Log(append([]any{l.prefix + ":"}, a...)...)
	}
}

func (l *TestLogger) Println(a ...any) {
	l.t.Helper()
	l.Print(a...)
}

func (l *TestLogger) Printf(format string, a ...any) {
	l.t.Helper()
	if l.prefix != "" {
		format = l.prefix + ": " + format
	}
	l.t.Logf(format, a...)
}

// verify interface
var (
	_ Logger = &NoLog{}
	_ Logger = &FileLogger{}
	_ Logger = &TestLogger{}
	_ Logger = log.Default()
)
