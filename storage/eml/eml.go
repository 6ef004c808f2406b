// Package eml stores each message in its own file, exactly as sent by the server
package eml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
)

const FileMode = 0600

type Writer struct {
	root string
	log  lib.Logger
}

// New creates the root directory if needed
func New(root string) (*Writer, error) {
	return NewWithLogger(root, nil)
}

func NewWithLogger(root string, logger lib.Logger) (*Writer, error) {
	if root == "" {
		return nil, errors.New("missing target directory")
	}
	if logger == nil {
		logger = &lib.NoLog{}
	}
	err := os.MkdirAll(root, 0700)
	if err != nil {
		return nil, fmt.Errorf("cannot create target directory: %w", err)
	}
	return &Writer{
		root: root,
		log:  logger,
	}, nil
}

func (w *Writer) Root() string {
	return w.root
}

// Write saves the raw message under root/filename, replacing any existing file
func (w *Writer) Write(filename string, msg *mailbox.Message) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	if msg == nil {
		return "", errors.New("nil message")
	}
	location := filepath.Join(w.root, filename)
	err := os.WriteFile(location, msg.Body, FileMode)
	if err != nil {
		return "", err
	}
	if !msg.InternalDate.IsZero() {
		_ = os.Chtimes(location, msg.InternalDate, msg.InternalDate)
	}
	w.log.Printf("Message written: file=%q size=%d", location, len(msg.Body))
	return location, nil
}
