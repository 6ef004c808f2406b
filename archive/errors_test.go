package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/creativeprojects/emldump/lib"
	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesKindAndCause(t *testing.T) {
	err := newError(lib.ErrFetch, 12, io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, lib.ErrFetch)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, err, lib.ErrWrite)
	assert.Equal(t, "cannot fetch message id:12: unexpected EOF", err.Error())

	wrapped := fmt.Errorf("archive INBOX: %w", newError(lib.ErrSearch, 0, io.EOF))
	assert.ErrorIs(t, wrapped, lib.ErrSearch)
	assert.Equal(t, "archive INBOX: cannot search folder: EOF", wrapped.Error())
}

func TestIsFatal(t *testing.T) {
	testCases := []struct {
		err   error
		fatal bool
	}{
		{nil, false},
		{newError(lib.ErrFetch, 1, io.EOF), false},
		{newError(lib.ErrWrite, 1, io.EOF), false},
		{fmt.Errorf("wrapped: %w", newError(lib.ErrWrite, 1, io.EOF)), false},
		{newError(lib.ErrFolderSelect, 0, io.EOF), true},
		{newError(lib.ErrSearch, 0, io.EOF), true},
		{fmt.Errorf("%w: bad password", lib.ErrAuth), true},
		{context.Canceled, true},
		{errors.New("unknown"), true},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.fatal, IsFatal(testCase.err), "%v", testCase.err)
	}
}
