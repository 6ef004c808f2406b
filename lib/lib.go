package lib

import (
	"path/filepath"
	"strings"
)

// LocalPath converts a remote mailbox name into a relative path on disk:
// each level of the mailbox hierarchy becomes a directory.
func LocalPath(name, delimiter string) string {
	if delimiter == "" {
		delimiter = "/"
	}
	parts := strings.Split(name, delimiter)
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || part == "." || part == ".." {
			continue
		}
		// a separator left inside a level would create an extra directory
		part = strings.ReplaceAll(part, string(filepath.Separator), "_")
		part = strings.ReplaceAll(part, "/", "_")
		cleaned = append(cleaned, part)
	}
	return filepath.Join(cleaned...)
}
