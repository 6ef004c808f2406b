package archive

import (
	"errors"
	"fmt"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
)

// Error attaches a kind (one of the lib.Err* sentinels) and the message ID to the underlying cause.
// errors.Is matches both the kind and the cause.
type Error struct {
	Kind error
	ID   mailbox.MessageID
	Err  error
}

func newError(kind error, id mailbox.MessageID, err error) *Error {
	return &Error{
		Kind: kind,
		ID:   id,
		Err:  err,
	}
}

func (e *Error) Error() string {
	if e.ID.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s id:%s: %s", e.Kind, e.ID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// IsFatal decides between aborting the run and logging the error to continue with the next message.
// Only the errors concerning one message are recoverable.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, lib.ErrFetch) || errors.Is(err, lib.ErrWrite) {
		return false
	}
	return true
}
