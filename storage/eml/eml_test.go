package eml

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMessage(t *testing.T) {
	root := filepath.Join(t.TempDir(), "user@example.com", "INBOX")
	writer, err := NewWithLogger(root, lib.NewTestLogger(t, "eml"))
	require.NoError(t, err)
	assert.DirExists(t, root)

	date := time.Date(2016, 5, 11, 14, 31, 59, 0, time.UTC)
	body := lib.GenerateEmail("contact@example.org", "hello", 14651, 10000)
	location, err := writer.Write("14651.eml", &mailbox.Message{ID: 14651, Body: body, InternalDate: date})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "14651.eml"), location)

	content, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, body, content)

	info, err := os.Stat(location)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(date))
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(FileMode), info.Mode().Perm())
	}
}

func TestOverwriteMessage(t *testing.T) {
	writer, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = writer.Write("00001.eml", &mailbox.Message{ID: 1, Body: []byte("a much longer first version")})
	require.NoError(t, err)
	location, err := writer.Write("00001.eml", &mailbox.Message{ID: 1, Body: []byte("second")})
	require.NoError(t, err)

	content, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestInvalidFilename(t *testing.T) {
	writer, err := New(t.TempDir())
	require.NoError(t, err)

	for _, filename := range []string{"", "../00001.eml", "sub/00001.eml"} {
		_, err = writer.Write(filename, &mailbox.Message{ID: 1})
		assert.Error(t, err, filename)
	}
	_, err = writer.Write("00001.eml", nil)
	assert.Error(t, err)
}

func TestMissingRoot(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
