package mem

import (
	"sort"
	"time"

	"github.com/creativeprojects/emldump/mailbox"
)

type memMessage struct {
	content []byte
	flags   []string
	date    time.Time
}

type memMailbox struct {
	info        mailbox.Info
	uidValidity uint32
	currentUid  uint32
	messages    map[mailbox.MessageID]*memMessage
}

func (m *memMailbox) newMessage(uid mailbox.MessageID, content []byte, flags []string, date time.Time) mailbox.MessageID {
	if uid.IsZero() {
		uid = mailbox.MessageID(m.currentUid + 1)
	}
	if uint32(uid) > m.currentUid {
		m.currentUid = uint32(uid)
	}
	m.messages[uid] = &memMessage{
		content: content,
		flags:   flags,
		date:    date,
	}
	return uid
}

func (m *memMailbox) ids() []mailbox.MessageID {
	ids := make([]mailbox.MessageID, 0, len(m.messages))
	for id := range m.messages {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}
