package mailbox

import (
	"sort"
	"time"
)

// Run is the summary of one archive run on a folder
type Run struct {
	AccountTag  string
	Folder      string
	Date        time.Time
	Duration    time.Duration
	UidValidity uint32
	Checkpoint  MessageID
	Total       int
	Skipped     int
	Written     int
	Failed      int
	Failures    []MessageID
	// Interrupted is set when the run stopped before the end of the folder
	Interrupted bool
}

type History struct {
	Runs []Run
}

// Sort orders the runs from the oldest to the most recent
func (h *History) Sort() {
	sort.SliceStable(h.Runs, func(i, j int) bool {
		return h.Runs[i].Date.Before(h.Runs[j].Date)
	})
}

// FindLastRun returns the most recent run on this folder, or nil
func FindLastRun(history *History, folder string) *Run {
	if history == nil {
		return nil
	}
	var last *Run
	for i, run := range history.Runs {
		if run.Folder != folder {
			continue
		}
		if last == nil || run.Date.After(last.Date) {
			last = &history.Runs[i]
		}
	}
	return last
}

// FindFailures returns the IDs that failed during the last run and were never written since.
// A later run with a lower checkpoint may have archived them.
func FindFailures(history *History, folder string) []MessageID {
	if history == nil {
		return nil
	}
	runs := make([]Run, 0, len(history.Runs))
	for _, run := range history.Runs {
		if run.Folder == folder {
			runs = append(runs, run)
		}
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Date.Before(runs[j].Date)
	})
	pending := make(map[MessageID]bool)
	for _, run := range runs {
		for id := range pending {
			// the run went over this ID again: it either failed again or got written
			if id >= run.Checkpoint && !run.Interrupted {
				delete(pending, id)
			}
		}
		for _, id := range run.Failures {
			pending[id] = true
		}
	}
	failures := make([]MessageID, 0, len(pending))
	for id := range pending {
		failures = append(failures, id)
	}
	sort.Slice(failures, func(i, j int) bool {
		return failures[i] < failures[j]
	})
	return failures
}
