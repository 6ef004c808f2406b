package lib

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalPath(t *testing.T) {
	fixtures := []struct {
		name      string
		delimiter string
		expected  string
	}{
		{"INBOX", "/", "INBOX"},
		{"[Gmail]/All Mail", "/", filepath.Join("[Gmail]", "All Mail")},
		{"Archive.2022", ".", filepath.Join("Archive", "2022")},
		{"Archive.2022/03", ".", filepath.Join("Archive", "2022_03")},
		{"../../etc", "/", "etc"},
		{"INBOX", "", "INBOX"},
		{"/leading//double/", "/", filepath.Join("leading", "double")},
	}

	for _, fixture := range fixtures {
		t.Run(fixture.name, func(t *testing.T) {
			assert.Equal(t, fixture.expected, LocalPath(fixture.name, fixture.delimiter))
		})
	}
}
