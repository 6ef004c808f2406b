package archive

import (
	"context"

	"github.com/creativeprojects/emldump/mailbox"
)

// Session is an open and authenticated connection to the mail server.
// It is not safe for concurrent use.
type Session interface {
	// ListMailbox returns all the folders of the account
	ListMailbox() ([]mailbox.Info, error)
	// SelectMailbox opens the folder in read-only mode
	SelectMailbox(info mailbox.Info) (*mailbox.Status, error)
	// SearchMessages returns the IDs of all the messages of the selected folder
	SearchMessages() ([]mailbox.MessageID, error)
	// FetchMessage downloads the raw message
	FetchMessage(ctx context.Context, id mailbox.MessageID) (*mailbox.Message, error)
}

// Writer persists raw messages
type Writer interface {
	// Write stores the message under the filename and returns its location.
	// An existing message at the same location is overwritten.
	Write(filename string, msg *mailbox.Message) (string, error)
}

// Remover is implemented by the writers that cannot overwrite a message in place:
// the previous copy of the message is removed before writing the new one.
type Remover interface {
	Remove(location string) error
}

// Index keeps track of the archived messages
type Index interface {
	// Entry returns the message archived under this UIDVALIDITY, nil if there is none
	Entry(folder string, uidValidity uint32, id mailbox.MessageID) (*mailbox.Entry, error)
	// Checkpoint returns the first ID to archive when resuming, zero when the whole folder is to be archived
	Checkpoint(folder string, uidValidity uint32) (mailbox.MessageID, error)
	// PutEntry records a written message. The cursor of the folder moves to this entry when advance is true
	PutEntry(folder string, uidValidity uint32, entry mailbox.Entry, advance bool) error
}

// Reporter receives the progress of a run
type Reporter interface {
	// Progress is called once per message ID, with current starting at 1
	Progress(current, total int)
	// Error is called for each message that could not be archived
	Error(id mailbox.MessageID, err error)
}
