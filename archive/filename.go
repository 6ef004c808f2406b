package archive

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/creativeprojects/emldump/mailbox"
)

const (
	NoSubject = "NO SUBJECT"
	// MaxNameLength is the maximum number of characters of a filename before the extension
	MaxNameLength = 100
	Extension     = ".eml"
	// maxNameBytes keeps the name with its extension under NAME_MAX of most filesystems
	maxNameBytes = 255 - len(Extension)
)

// NameFormat selects the segments of the filename
type NameFormat string

const (
	// NameID is "{id}.eml"
	NameID NameFormat = "id"
	// NameSubject is "{id} - {subject}.eml"
	NameSubject NameFormat = "subject"
	// NameFull is "{id} - {from} - {subject}.eml"
	NameFull NameFormat = "full"
)

func (f NameFormat) Valid() bool {
	switch f {
	case NameID, NameSubject, NameFull:
		return true
	}
	return false
}

// SanitizeSubject removes the characters that cannot be part of a filename,
// and cuts the result to MaxNameLength characters.
// Sanitizing twice gives the same result as sanitizing once.
func SanitizeSubject(subject string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == ':', r == '/', r == '\\':
			return -1
		case unicode.IsControl(r):
			return -1
		case r == unicode.ReplacementChar:
			return -1
		}
		return r
	}, subject)
	cleaned = truncate(cleaned, MaxNameLength)
	return strings.TrimSpace(cleaned)
}

// BuildFilename returns the name of the file for this message: the ID padded to 5 digits,
// followed by the sanitized segments requested by the format.
// The name is limited to MaxNameLength characters, plus the extension,
// and never goes over 255 bytes with the extension.
func BuildFilename(id mailbox.MessageID, subject, from string, format NameFormat) string {
	filename := fmt.Sprintf("%05d", uint32(id))
	switch format {
	case NameSubject:
		filename = fmt.Sprintf("%s - %s", filename, subject)
	case NameFull:
		filename = fmt.Sprintf("%s - %s - %s", filename, from, subject)
	}
	filename = strings.ReplaceAll(filename, "/", "")
	filename = truncate(filename, MaxNameLength)
	filename = truncateBytes(filename, maxNameBytes)
	return filename + Extension
}

// truncate cuts s to max characters (not bytes)
func truncate(s string, max int) string {
	count := 0
	for index := range s {
		if count == max {
			return s[:index]
		}
		count++
	}
	return s
}

// truncateBytes cuts s to at most max bytes without splitting a character
func truncateBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	end := 0
	for end < len(s) {
		_, size := utf8.DecodeRuneInString(s[end:])
		if end+size > max {
			break
		}
		end += size
	}
	return s[:end]
}
