package mailbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFindLastRun(t *testing.T) {
	now := time.Now()
	history := &History{
		Runs: []Run{
			{Folder: "INBOX", Date: now.Add(-time.Hour), Written: 1},
			{Folder: "INBOX", Date: now, Written: 2},
			{Folder: "Sent", Date: now.Add(time.Hour), Written: 3},
			{Folder: "INBOX", Date: now.Add(-2 * time.Hour), Written: 4},
		},
	}

	last := FindLastRun(history, "INBOX")
	if assert.NotNil(t, last) {
		assert.Equal(t, 2, last.Written)
	}
	assert.Nil(t, FindLastRun(history, "Trash"))
	assert.Nil(t, FindLastRun(nil, "INBOX"))
}

func TestSortHistory(t *testing.T) {
	now := time.Now()
	history := &History{
		Runs: []Run{
			{Date: now, Written: 2},
			{Date: now.Add(-time.Hour), Written: 1},
		},
	}
	history.Sort()
	assert.Equal(t, 1, history.Runs[0].Written)
	assert.Equal(t, 2, history.Runs[1].Written)
}

func TestFindFailures(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name     string
		runs     []Run
		expected []MessageID
	}{
		{
			name:     "no run",
			expected: []MessageID{},
		},
		{
			name: "one run with failures",
			runs: []Run{
				{Folder: "INBOX", Date: now, Checkpoint: 1, Failures: []MessageID{12, 3}},
			},
			expected: []MessageID{3, 12},
		},
		{
			name: "failures retried from a lower checkpoint",
			runs: []Run{
				{Folder: "INBOX", Date: now.Add(-time.Hour), Checkpoint: 1, Failures: []MessageID{3, 12}},
				{Folder: "INBOX", Date: now, Checkpoint: 3},
			},
			expected: []MessageID{},
		},
		{
			name: "failures skipped by a higher checkpoint",
			runs: []Run{
				{Folder: "INBOX", Date: now.Add(-time.Hour), Checkpoint: 1, Failures: []MessageID{3, 12}},
				{Folder: "INBOX", Date: now, Checkpoint: 10, Failures: []MessageID{20}},
			},
			expected: []MessageID{3, 20},
		},
		{
			name: "interrupted run does not clear failures",
			runs: []Run{
				{Folder: "INBOX", Date: now.Add(-time.Hour), Checkpoint: 1, Failures: []MessageID{3}},
				{Folder: "INBOX", Date: now, Checkpoint: 1, Interrupted: true},
			},
			expected: []MessageID{3},
		},
		{
			name: "other folders are ignored",
			runs: []Run{
				{Folder: "Sent", Date: now, Checkpoint: 1, Failures: []MessageID{3}},
			},
			expected: []MessageID{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			history := &History{Runs: testCase.runs}
			assert.Equal(t, testCase.expected, FindFailures(history, "INBOX"))
		})
	}
}
