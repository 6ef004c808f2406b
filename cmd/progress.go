package cmd

import (
	"errors"

	"github.com/creativeprojects/emldump/archive"
	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
	"github.com/creativeprojects/emldump/term"
	"github.com/pterm/pterm"
)

// reporter draws the progress bar and sends the failed messages to the error log
type reporter struct {
	errLog lib.Logger
	errors int
	pbar   *pterm.ProgressbarPrinter
}

func newReporter(errLog lib.Logger) *reporter {
	if errLog == nil {
		errLog = &lib.NoLog{}
	}
	return &reporter{
		errLog: errLog,
	}
}

// Progress starts the bar on the first message of the run
func (r *reporter) Progress(current, total int) {
	if current == 1 {
		r.Stop()
		r.pbar = term.NewProgressbar(total)
	}
	if r.pbar == nil || !r.pbar.IsActive {
		return
	}
	r.pbar.Add(current - r.pbar.Current)
	if !r.pbar.IsActive {
		term.Info("done!")
	}
}

// Stop leaves the bar where it is when the run ends before the last message
func (r *reporter) Stop() {
	if r.pbar == nil {
		return
	}
	_, _ = r.pbar.Stop()
	r.pbar = nil
}

func (r *reporter) Error(id mailbox.MessageID, err error) {
	r.errors++
	var archiveErr *archive.Error
	if errors.As(err, &archiveErr) {
		r.errLog.Printf("error archiving message id:%s: %s: %s", id, archiveErr.Kind, archiveErr.Err)
		return
	}
	r.errLog.Printf("error archiving message id:%s: %s", id, err)
}

var _ archive.Reporter = &reporter{}
