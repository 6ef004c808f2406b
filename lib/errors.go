package lib

import "errors"

var (
	ErrMailboxNotFound = errors.New("mailbox not found")
	ErrNotSelected     = errors.New("mailbox not selected")
	ErrMessageNotFound = errors.New("message not found")

	// fatal: the run cannot start or continue
	ErrAuth         = errors.New("authentication failure")
	ErrFolderSelect = errors.New("cannot select folder")
	ErrSearch       = errors.New("cannot search folder")
	// recoverable: only one message is lost
	ErrFetch = errors.New("cannot fetch message")
	ErrWrite = errors.New("cannot write message")
	// folder listing only
	ErrProtocol = errors.New("folder listing failed")
)
