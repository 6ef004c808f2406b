package mdir

import (
	"testing"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-maildir"
	"github.com/stretchr/testify/assert"
)

func TestToFlags(t *testing.T) {
	testCases := []struct {
		source   []string
		expected []maildir.Flag
	}{
		{nil, []maildir.Flag{}},
		{[]string{imap.RecentFlag}, []maildir.Flag{}},
		{[]string{imap.SeenFlag, imap.FlaggedFlag}, []maildir.Flag{maildir.FlagSeen, maildir.FlagFlagged}},
		{[]string{imap.AnsweredFlag, imap.AnsweredFlag}, []maildir.Flag{maildir.FlagReplied}},
		{[]string{"$Forwarded", imap.DraftFlag, imap.DeletedFlag}, []maildir.Flag{maildir.FlagPassed, maildir.FlagDraft, maildir.FlagTrashed}},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, toFlags(testCase.source))
	}
}
