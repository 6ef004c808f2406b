package mdir

import (
	"github.com/emersion/go-imap"
	"github.com/emersion/go-maildir"
)

// forwardedKeyword is the keyword set by most clients on a forwarded message
const forwardedKeyword = "$Forwarded"

var maildirFlags = map[string]maildir.Flag{
	imap.SeenFlag:     maildir.FlagSeen,
	imap.AnsweredFlag: maildir.FlagReplied,
	imap.FlaggedFlag:  maildir.FlagFlagged,
	imap.DeletedFlag:  maildir.FlagTrashed,
	imap.DraftFlag:    maildir.FlagDraft,
	forwardedKeyword:  maildir.FlagPassed,
}

// toFlags keeps the IMAP flags having a maildir equivalent
func toFlags(source []string) []maildir.Flag {
	flags := make([]maildir.Flag, 0, len(source))
	seen := make(map[maildir.Flag]bool, len(source))
	for _, sourceFlag := range source {
		flag, ok := maildirFlags[sourceFlag]
		if !ok || seen[flag] {
			continue
		}
		seen[flag] = true
		flags = append(flags, flag)
	}
	return flags
}
