// Package mem is an in-memory mail account, with failures on demand
package mem

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
)

const Delimiter = "/"

var ErrConnectionLost = errors.New("connection lost")

type Session struct {
	data     map[string]*memMailbox
	order    []string
	selected string

	// ListError is returned by ListMailbox when set
	ListError error
	// SelectError is returned by SelectMailbox when set
	SelectError error
	// SearchError is returned by SearchMessages when set
	SearchError error
	// FetchErrors are returned by FetchMessage for these IDs
	FetchErrors map[mailbox.MessageID]error
	// Fetched records the IDs requested, in order
	Fetched []mailbox.MessageID
}

func New() *Session {
	return &Session{
		data:        make(map[string]*memMailbox),
		order:       make([]string, 0),
		FetchErrors: make(map[mailbox.MessageID]error),
		Fetched:     make([]mailbox.MessageID, 0),
	}
}

// CreateMailbox doesn't do anything if the mailbox already exists
func (s *Session) CreateMailbox(info mailbox.Info) {
	if info.Delimiter == "" {
		info.Delimiter = Delimiter
	}
	if _, ok := s.data[info.Name]; ok {
		return
	}
	s.data[info.Name] = &memMailbox{
		info:        info,
		uidValidity: lib.NewUIDValidity(),
		messages:    make(map[mailbox.MessageID]*memMessage),
	}
	s.order = append(s.order, info.Name)
}

// PutMessage stores a message with this ID, or with the next ID available when uid is zero
func (s *Session) PutMessage(name string, uid mailbox.MessageID, content []byte, flags ...string) mailbox.MessageID {
	s.CreateMailbox(mailbox.Info{Name: name})
	return s.data[name].newMessage(uid, content, flags, time.Now())
}

// GenerateFakeEmails adds count generated messages with consecutive IDs starting at first
func (s *Session) GenerateFakeEmails(name string, first mailbox.MessageID, count int) []mailbox.MessageID {
	ids := make([]mailbox.MessageID, count)
	for i := 0; i < count; i++ {
		id := first + mailbox.MessageID(i)
		subject := fmt.Sprintf("Message %d: generated/fake", id)
		ids[i] = s.PutMessage(name, id, lib.GenerateEmail("user@example.com", subject, uint32(id), 2000))
	}
	return ids
}

func (s *Session) ListMailbox() ([]mailbox.Info, error) {
	if s.ListError != nil {
		return nil, s.ListError
	}
	list := make([]mailbox.Info, len(s.order))
	for index, name := range s.order {
		list[index] = s.data[name].info
	}
	return list, nil
}

func (s *Session) SelectMailbox(info mailbox.Info) (*mailbox.Status, error) {
	if s.SelectError != nil {
		return nil, s.SelectError
	}
	mbox, ok := s.data[info.Name]
	if !ok || !mbox.info.Selectable() {
		return nil, lib.ErrMailboxNotFound
	}
	s.selected = info.Name
	return &mailbox.Status{
		Name:        info.Name,
		Messages:    uint32(len(mbox.messages)),
		UidValidity: mbox.uidValidity,
		UidNext:     mbox.currentUid + 1,
	}, nil
}

func (s *Session) SearchMessages() ([]mailbox.MessageID, error) {
	if s.selected == "" {
		return nil, lib.ErrNotSelected
	}
	if s.SearchError != nil {
		return nil, s.SearchError
	}
	return s.data[s.selected].ids(), nil
}

func (s *Session) FetchMessage(ctx context.Context, id mailbox.MessageID) (*mailbox.Message, error) {
	if s.selected == "" {
		return nil, lib.ErrNotSelected
	}
	s.Fetched = append(s.Fetched, id)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := s.FetchErrors[id]; ok {
		return nil, err
	}
	msg, ok := s.data[s.selected].messages[id]
	if !ok {
		return nil, lib.ErrMessageNotFound
	}
	content := make([]byte, len(msg.content))
	copy(content, msg.content)
	return &mailbox.Message{
		ID:           id,
		Flags:        msg.flags,
		InternalDate: msg.date,
		Size:         uint32(len(msg.content)),
		Body:         content,
	}, nil
}

// UidValidity of the mailbox, zero if it doesn't exist
func (s *Session) UidValidity(name string) uint32 {
	if mbox, ok := s.data[name]; ok {
		return mbox.uidValidity
	}
	return 0
}

// ResetUidValidity simulates a server renumbering the mailbox
func (s *Session) ResetUidValidity(name string) {
	if mbox, ok := s.data[name]; ok {
		mbox.uidValidity++
		if mbox.uidValidity == 0 {
			mbox.uidValidity = 1
		}
	}
}

func (s *Session) UnselectMailbox() error {
	s.selected = ""
	return nil
}

func (s *Session) Close() error {
	s.selected = ""
	return nil
}
