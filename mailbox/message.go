package mailbox

import (
	"time"
)

type Message struct {
	// The message unique identifier.
	ID MessageID
	// The message flags.
	Flags []string
	// The date the message was received by the server.
	InternalDate time.Time
	// The message size advertised by the server.
	Size uint32
	// The raw message, as sent by the server.
	Body []byte
}
