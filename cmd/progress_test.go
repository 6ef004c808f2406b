package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/creativeprojects/emldump/archive"
	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mem"
	"github.com/creativeprojects/emldump/term"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterLogsErrors(t *testing.T) {
	buffer := &bytes.Buffer{}
	r := newReporter(log.New(buffer, "", 0))

	r.Error(3, &archive.Error{Kind: lib.ErrFetch, ID: 3, Err: mem.ErrConnectionLost})
	r.Error(12, errors.New("something else"))

	assert.Equal(t, 2, r.errors)
	assert.Equal(t, fmt.Sprintf("error archiving message id:3: %s: connection lost\nerror archiving message id:12: something else\n", lib.ErrFetch), buffer.String())
}

func TestReporterProgressbar(t *testing.T) {
	buffer := &bytes.Buffer{}
	term.SetOutput(buffer, buffer)
	defer term.SetOutput(os.Stdout, os.Stderr)

	r := newReporter(nil)
	r.Progress(1, 3)
	require.NotNil(t, r.pbar)
	assert.Equal(t, 3, r.pbar.Total)
	assert.Equal(t, 1, r.pbar.Current)

	r.Progress(2, 3)
	r.Progress(3, 3)
	assert.False(t, r.pbar.IsActive)
	output := pterm.RemoveColorFromString(buffer.String())
	assert.Contains(t, output, "[3/3]")
	assert.Contains(t, output, "100%")
	assert.Contains(t, output, "done!")

	// a second run starts a new bar
	r.Progress(1, 2)
	require.NotNil(t, r.pbar)
	assert.Equal(t, 2, r.pbar.Total)
	assert.True(t, r.pbar.IsActive)
	r.Stop()
	assert.Nil(t, r.pbar)
}

func TestReporterProgress(t *testing.T) {
	term.SetLevel(term.LevelWarn)
	defer term.SetLevel(term.LevelInfo)

	r := newReporter(nil)
	for i := 1; i <= 3; i++ {
		r.Progress(i, 3)
	}
	assert.Nil(t, r.pbar)
	assert.Equal(t, 0, r.errors)
}
