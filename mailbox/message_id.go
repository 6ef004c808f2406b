package mailbox

import (
	"fmt"
	"strconv"
)

// MessageID is the server-assigned identifier of a message inside a folder (IMAP UID).
// IDs are strictly ordered but not necessarily contiguous.
type MessageID uint32

const EmptyMessageID MessageID = 0

func ParseMessageID(value string) (MessageID, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return EmptyMessageID, fmt.Errorf("invalid message ID %q: %w", value, err)
	}
	return MessageID(id), nil
}

func (i MessageID) IsZero() bool {
	return i == EmptyMessageID
}

func (i MessageID) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

// Next returns the following ID, without overflowing
func (i MessageID) Next() MessageID {
	if i == MessageID(^uint32(0)) {
		return i
	}
	return i + 1
}
