package mem

import (
	"context"
	"testing"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	session := New()
	defer session.Close()

	session.CreateMailbox(mailbox.Info{Name: "[Gmail]", Attributes: []string{`\Noselect`}})
	session.GenerateFakeEmails("INBOX", 10, 3)
	id := session.PutMessage("INBOX", 0, []byte("Subject: next\r\n\r\n"))
	assert.Equal(t, mailbox.MessageID(13), id)

	list, err := session.ListMailbox()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "[Gmail]", list[0].Name)
	assert.Equal(t, "INBOX", list[1].Name)
	assert.Equal(t, Delimiter, list[1].Delimiter)

	_, err = session.SearchMessages()
	assert.ErrorIs(t, err, lib.ErrNotSelected)

	_, err = session.SelectMailbox(mailbox.Info{Name: "[Gmail]"})
	assert.ErrorIs(t, err, lib.ErrMailboxNotFound)

	status, err := session.SelectMailbox(mailbox.Info{Name: "INBOX"})
	require.NoError(t, err)
	assert.Equal(t, uint32(4), status.Messages)
	assert.Equal(t, uint32(14), status.UidNext)
	assert.NotZero(t, status.UidValidity)

	ids, err := session.SearchMessages()
	require.NoError(t, err)
	assert.Equal(t, []mailbox.MessageID{10, 11, 12, 13}, ids)

	session.FetchErrors[11] = ErrConnectionLost
	_, err = session.FetchMessage(context.Background(), 11)
	assert.ErrorIs(t, err, ErrConnectionLost)

	msg, err := session.FetchMessage(context.Background(), 13)
	require.NoError(t, err)
	assert.Equal(t, "Subject: next\r\n\r\n", string(msg.Body))

	_, err = session.FetchMessage(context.Background(), 99)
	assert.ErrorIs(t, err, lib.ErrMessageNotFound)

	assert.Equal(t, []mailbox.MessageID{11, 13, 99}, session.Fetched)
}
