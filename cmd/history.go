package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
	"github.com/creativeprojects/emldump/storage/local"
	"github.com/creativeprojects/emldump/term"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const dateFormat = "2006-01-02 15:04:05 MST"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the history of the archive runs of the account",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	account, err := resolveAccount(config, accountFlags, cmd.Flags().Changed)
	if err != nil {
		return err
	}
	filename := filepath.Join(accountDir(account), IndexFilename)
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		term.Warnf("no archive found for %s in %s", account.Username, account.Local)
		return nil
	}
	index, err := local.NewBoltStoreWithLogger(filename, debugLogger())
	if err != nil {
		return err
	}
	defer index.Close()

	history, err := index.History()
	if err != nil {
		return fmt.Errorf("cannot load history: %w", err)
	}
	if len(history.Runs) == 0 {
		term.Warn("no archive run recorded yet")
		return nil
	}
	err = pterm.DefaultTable.WithBoxed(true).WithHasHeader().WithData(historyTable(history)).Render()
	if err != nil {
		return err
	}

	folders, err := archivedFolderTable(index, history)
	if err != nil {
		return err
	}
	err = pterm.DefaultTable.WithBoxed(true).WithHasHeader().WithData(folders).Render()
	if err != nil {
		return err
	}
	for _, row := range folders[1:] {
		folder := row[0]
		if failures := mailbox.FindFailures(history, folder); len(failures) > 0 {
			term.Warnf("%s: %d messages were never archived: %v", folder, len(failures), failures)
		}
	}
	return nil
}

// archivedFolderTable summarizes each archived folder: messages in the index, last run, and where the next run starts
func archivedFolderTable(index *local.BoltStore, history *mailbox.History) (pterm.TableData, error) {
	data := pterm.TableData{
		{"Folder", "Archived", "Last run", "Next ID"},
	}
	folders, err := index.Folders()
	if err != nil {
		return nil, err
	}
	for _, folder := range folders {
		count, err := index.CountEntries(folder)
		if err != nil {
			return nil, err
		}
		lastRun := "-"
		if run := mailbox.FindLastRun(history, folder); run != nil {
			lastRun = run.Date.Format(dateFormat)
			if run.Interrupted {
				lastRun += " (interrupted)"
			}
		}
		cursor, err := index.Cursor(folder)
		if err != nil {
			return nil, err
		}
		next := "1"
		if cursor != nil {
			next = cursor.ID.Next().String()
		}
		data = append(data, []string{folder, strconv.Itoa(count), lastRun, next})
	}
	return data, nil
}

func historyTable(history *mailbox.History) pterm.TableData {
	data := pterm.TableData{
		{"Date", "Account", "Folder", "From ID", "Messages", "Archived", "Skipped", "Failed", "Duration"},
	}
	for _, run := range history.Runs {
		folder := run.Folder
		if run.Interrupted {
			folder += " (interrupted)"
		}
		data = append(data, []string{
			run.Date.Format(dateFormat),
			lib.ShortTag(run.AccountTag),
			folder,
			run.Checkpoint.String(),
			strconv.Itoa(run.Total),
			strconv.Itoa(run.Written),
			strconv.Itoa(run.Skipped),
			strconv.Itoa(run.Failed),
			run.Duration.Round(time.Millisecond).String(),
		})
	}
	return data
}
