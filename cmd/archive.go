package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/creativeprojects/emldump/archive"
	"github.com/creativeprojects/emldump/cfg"
	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
	"github.com/creativeprojects/emldump/storage"
	"github.com/creativeprojects/emldump/storage/local"
	"github.com/creativeprojects/emldump/term"
	"github.com/spf13/cobra"
)

type archiveOptions struct {
	// startingID is the checkpoint given by the user, zero to resume from the index
	startingID mailbox.MessageID
	// restart discards the saved cursor before resuming
	restart bool
	logger  lib.Logger
}

func runArchive(cmd *cobra.Command, args []string) error {
	account, err := resolveAccount(config, accountFlags, cmd.Flags().Changed)
	if err != nil {
		return err
	}
	err = askPassword(&account)
	if err != nil {
		return err
	}
	if archiveFlags.listFolders {
		return runListFolders(account)
	}

	startingID, err := parseStartingID(archiveFlags.startingID)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := archiveAccount(ctx, account, archiveOptions{
		startingID: startingID,
		restart:    archiveFlags.restart,
		logger:     debugLogger(),
	})
	if result != nil {
		displayResult(result, account.Log)
	}
	if errors.Is(err, context.Canceled) {
		term.Warn("interrupted: the next run will resume from the last message archived")
		return nil
	}
	return err
}

// parseStartingID returns zero when the flag is not set, meaning the run resumes from the index.
// An explicit zero would be mistaken for a resume so it is refused.
func parseStartingID(value string) (mailbox.MessageID, error) {
	if value == "" {
		return mailbox.EmptyMessageID, nil
	}
	id, err := mailbox.ParseMessageID(value)
	if err != nil {
		return mailbox.EmptyMessageID, err
	}
	if id.IsZero() {
		return mailbox.EmptyMessageID, errors.New("invalid starting ID 0: message IDs start at 1, leave --starting-id out to resume from the last run")
	}
	return id, nil
}

// archiveAccount archives one folder of the account and records the run in the index
func archiveAccount(ctx context.Context, account cfg.Account, opts archiveOptions) (*archive.Result, error) {
	if opts.logger == nil {
		opts.logger = &lib.NoLog{}
	}
	format := storage.Format(account.Format)
	if format != "" && !format.Valid() {
		return nil, fmt.Errorf("invalid output format %q", account.Format)
	}
	nameFormat := archive.NameFormat(account.Name)
	if nameFormat != "" && !nameFormat.Valid() {
		return nil, fmt.Errorf("invalid file name format %q", account.Name)
	}

	session, err := openSession(account, opts.logger)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	folder := findFolder(session, account.Folder)
	dir := accountDir(account)

	index, err := local.NewBoltStoreWithLogger(filepath.Join(dir, IndexFilename), opts.logger)
	if err != nil {
		return nil, err
	}
	defer index.Close()
	err = index.Init()
	if err != nil {
		return nil, fmt.Errorf("cannot initialize archive index: %w", err)
	}

	if opts.restart {
		err = index.ResetCursor(folder.Name)
		if err != nil {
			return nil, err
		}
	}

	target := filepath.Join(dir, folder.LocalPath())
	writer, err := storage.NewWriter(format, target, opts.logger)
	if err != nil {
		return nil, err
	}

	errLog, err := lib.OpenFileLogger(account.Log)
	if err != nil {
		return nil, err
	}
	defer errLog.Close()

	progress := newReporter(errLog)
	archiver, err := archive.New(archive.Config{
		Session:     session,
		Reporter:    progress,
		Index:       index,
		NameFormat:  nameFormat,
		DebugLogger: opts.logger,
	})
	if err != nil {
		return nil, err
	}

	term.Infof("archiving folder %q into %s", folder.Name, target)
	start := time.Now()
	var result *archive.Result
	if opts.startingID.IsZero() {
		result, err = archiver.Resume(ctx, folder, writer)
	} else {
		result, err = archiver.Archive(ctx, folder, writer, opts.startingID)
	}
	progress.Stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	_ = session.UnselectMailbox()

	run := mailbox.Run{
		AccountTag:  lib.AccountTag(account.ServerURL(), account.Username),
		Folder:      folder.Name,
		Date:        start,
		Duration:    time.Since(start),
		UidValidity: result.UidValidity,
		Checkpoint:  result.Checkpoint,
		Total:       result.Total,
		Skipped:     result.Skipped,
		Written:     result.Written,
		Failed:      result.Failed,
		Failures:    result.Failures,
		Interrupted: err != nil,
	}
	if saveErr := index.AddRun(run); saveErr != nil {
		term.Warnf("cannot save history: %s", saveErr)
	}
	return result, err
}

func displayResult(result *archive.Result, logFile string) {
	term.Infof("%d messages in folder %q: %d archived, %d skipped, %d failed",
		result.Total, result.Folder, result.Written, result.Skipped, result.Failed)
	if result.Failed > 0 {
		term.Warnf("%d messages could not be archived: see %s", result.Failed, logFile)
	}
}
