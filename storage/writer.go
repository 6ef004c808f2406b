package storage

import (
	"fmt"

	"github.com/creativeprojects/emldump/archive"
	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/storage/eml"
	"github.com/creativeprojects/emldump/storage/mdir"
)

type Format string

const (
	// EML writes one file per message
	EML Format = "eml"
	// MAILDIR delivers the messages in a maildir
	MAILDIR Format = "maildir"
)

func (f Format) Valid() bool {
	return f == EML || f == MAILDIR
}

// NewWriter creates the target directory for the format
func NewWriter(format Format, root string, logger lib.Logger) (archive.Writer, error) {
	var writer archive.Writer
	var err error
	switch format {
	case EML, "":
		writer, err = eml.NewWithLogger(root, logger)
	case MAILDIR:
		writer, err = mdir.NewWithLogger(root, logger)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return writer, nil
}

// verify interface
var (
	_ archive.Writer  = &eml.Writer{}
	_ archive.Writer  = &mdir.Writer{}
	_ archive.Remover = &mdir.Writer{}
)
