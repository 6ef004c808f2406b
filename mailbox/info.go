package mailbox

import (
	"github.com/creativeprojects/emldump/lib"
	"github.com/emersion/go-imap"
)

type Info struct {
	// The mailbox attributes.
	Attributes []string
	// The server's path separator.
	Delimiter string
	// The mailbox name.
	Name string
}

// Selectable is false for the folders that only exist as a level in the hierarchy
func (i Info) Selectable() bool {
	for _, attr := range i.Attributes {
		if attr == imap.NoSelectAttr {
			return false
		}
	}
	return true
}

// LocalPath is the relative directory holding the archive of this mailbox
func (i Info) LocalPath() string {
	return lib.LocalPath(i.Name, i.Delimiter)
}
