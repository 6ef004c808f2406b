package mailbox

import "time"

// Entry describes one message written to the archive
type Entry struct {
	ID MessageID
	// Subject after sanitization
	Subject  string
	Filename string
	// Location is where the writer stored the message (full path)
	Location   string
	Size       int
	Hash       []byte
	ArchivedAt time.Time
}
