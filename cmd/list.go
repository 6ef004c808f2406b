package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creativeprojects/emldump/archive"
	"github.com/creativeprojects/emldump/cfg"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Display the list of folders of the account",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	account, err := resolveAccount(config, accountFlags, cmd.Flags().Changed)
	if err != nil {
		return err
	}
	err = askPassword(&account)
	if err != nil {
		return err
	}
	return runListFolders(account)
}

func runListFolders(account cfg.Account) error {
	session, err := openSession(account, debugLogger())
	if err != nil {
		return err
	}
	defer session.Close()

	data, err := folderTable(session)
	if err != nil {
		return fmt.Errorf("cannot list account folders: %w", err)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// folderTable lists the folders with their number of messages
func folderTable(session folderSession) (pterm.TableData, error) {
	folders, err := archive.ListFolders(session)
	if err != nil {
		return nil, err
	}
	data := pterm.TableData{
		{"Folder", "Local path", "Messages", "Flags"},
	}
	for _, folder := range folders {
		var messages, flags string
		status, err := session.SelectMailbox(folder)
		if err == nil {
			messages = strconv.FormatUint(uint64(status.Messages), 10)
			flags = displayFlags(folder.Attributes)
			_ = session.UnselectMailbox()
		}
		data = append(data, []string{folder.Name, folder.LocalPath(), messages, flags})
	}
	return data, nil
}

type folderSession interface {
	archive.Session
	UnselectMailbox() error
}

func displayFlags(source []string) string {
	flags := make([]string, len(source))
	for i, flag := range source {
		flags[i] = strings.TrimPrefix(flag, "\\")
	}
	return strings.Join(flags, ", ")
}
