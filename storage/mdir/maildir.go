// Package mdir stores the messages of a folder in a maildir
package mdir

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
	"github.com/emersion/go-maildir"
)

type Writer struct {
	dir maildir.Dir
	log lib.Logger
}

func New(root string) (*Writer, error) {
	return NewWithLogger(root, nil)
}

// NewWithLogger initializes the maildir structure (cur, new, tmp) under root
func NewWithLogger(root string, logger lib.Logger) (*Writer, error) {
	if runtime.GOOS == "windows" {
		return nil, errors.New("maildir is not supported on Windows")
	}
	if root == "" {
		return nil, errors.New("missing target directory")
	}
	if logger == nil {
		logger = &lib.NoLog{}
	}
	err := os.MkdirAll(root, 0700)
	if err != nil {
		return nil, err
	}
	dir := maildir.Dir(root)
	err = dir.Init()
	if err != nil {
		return nil, fmt.Errorf("cannot initialize maildir: %w", err)
	}
	return &Writer{
		dir: dir,
		log: logger,
	}, nil
}

// Write delivers the message in the maildir. The filename is not used: maildir generates unique names.
func (w *Writer) Write(filename string, msg *mailbox.Message) (string, error) {
	if msg == nil {
		return "", errors.New("nil message")
	}
	key, writer, err := w.dir.Create(toFlags(msg.Flags))
	if err != nil {
		return "", err
	}
	_, err = writer.Write(msg.Body)
	if err != nil {
		_ = writer.Close()
		_ = w.dir.Remove(key)
		return "", err
	}
	err = writer.Close()
	if err != nil {
		_ = w.dir.Remove(key)
		return "", err
	}
	location, err := w.dir.Filename(key)
	if err != nil {
		return "", err
	}
	if !msg.InternalDate.IsZero() {
		_ = os.Chtimes(location, msg.InternalDate, msg.InternalDate)
	}
	w.log.Printf("Message delivered: id=%s key=%q size=%d flags=%v", msg.ID, key, len(msg.Body), msg.Flags)
	return location, nil
}

// Remove deletes a message written by a previous run
func (w *Writer) Remove(location string) error {
	err := os.Remove(location)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
