package term

import (
	"github.com/pterm/pterm"
)

const progressWidth = 60

// NewProgressbar starts a progress bar drawn as "[1/5] ====        20%" on the standard output.
// It returns nil when there is nothing to count or when the info messages are hidden.
func NewProgressbar(total int) *pterm.ProgressbarPrinter {
	if lvl > LevelInfo || total <= 0 {
		return nil
	}
	pbar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithBarCharacter("=").
		WithLastCharacter("=").
		WithBarFiller(" ").
		WithShowCount(true).
		WithShowPercentage(true).
		WithShowTitle(false).
		WithShowElapsedTime(false).
		WithMaxWidth(progressWidth).
		WithWriter(stdout).
		Start()
	return pbar
}
