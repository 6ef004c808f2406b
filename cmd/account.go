package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/creativeprojects/emldump/archive"
	"github.com/creativeprojects/emldump/cfg"
	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
	"github.com/creativeprojects/emldump/remote"
	"github.com/creativeprojects/emldump/term"
)

const (
	// IndexFilename is the archive index, in the account directory
	IndexFilename  = ".emldump.db"
	connectTimeout = 30 * time.Second
)

// resolveAccount merges the account from the configuration file with the command line flags.
// A flag explicitly set on the command line always wins, otherwise its default only fills an empty field.
func resolveAccount(config *cfg.Config, flags AccountFlags, changed func(name string) bool) (cfg.Account, error) {
	account := cfg.Account{}
	if flags.account != "" {
		if config == nil {
			return account, fmt.Errorf("account not found: %s", flags.account)
		}
		found, ok := config.Accounts[flags.account]
		if !ok {
			return account, fmt.Errorf("account not found: %s", flags.account)
		}
		account = found
	}

	setString := func(name string, target *string, value string) {
		if changed(name) || *target == "" {
			*target = value
		}
	}
	setInt := func(name string, target *int, value int) {
		if changed(name) || *target == 0 {
			*target = value
		}
	}
	setBool := func(name string, target *bool, value bool) {
		if changed(name) {
			*target = value
		}
	}

	setString("username", &account.Username, flags.username)
	setString("password", &account.Password, flags.password)
	setString("host", &account.Host, flags.host)
	setInt("port", &account.Port, flags.port)
	setString("local-folder", &account.Local, flags.localFolder)
	setString("remote-folder", &account.Folder, flags.remoteFolder)
	setString("format", &account.Format, flags.format)
	setString("name", &account.Name, flags.name)
	setInt("rate-limit", &account.RateLimit, flags.rateLimit)
	setString("log", &account.Log, flags.logFile)
	setBool("compress", &account.Compress, flags.compress)
	setBool("no-tls", &account.NoTLS, flags.noTLS)
	setBool("insecure", &account.SkipTLSVerification, flags.insecure)

	if account.Username == "" {
		return account, errors.New("missing username: use --username or --account")
	}
	if account.Host == "" {
		account.Host = cfg.DefaultHost
	}
	if account.Port == 0 {
		account.Port = cfg.DefaultPort
	}
	if account.Local == "" {
		account.Local = cfg.DefaultLocal
	}
	if account.Folder == "" {
		account.Folder = cfg.DefaultFolder
	}
	if account.Log == "" {
		account.Log = accountName(account) + ".log"
	}
	if account.RateLimit < 0 {
		return account, fmt.Errorf("invalid rate limit %d", account.RateLimit)
	}
	return account, nil
}

// accountName is the name of the account directory: the username without any path separator
func accountName(account cfg.Account) string {
	return lib.LocalPath(account.Username, "/")
}

// accountDir is the directory holding all the folders archived from the account, and the index
func accountDir(account cfg.Account) string {
	return filepath.Join(account.Local, accountName(account))
}

func askPassword(account *cfg.Account) error {
	if account.Password != "" {
		return nil
	}
	password, err := term.ReadPassword(fmt.Sprintf("Password for %s: ", account.Username))
	if err != nil {
		return err
	}
	account.Password = password
	return nil
}

func openSession(account cfg.Account, logger lib.Logger) (*remote.Imap, error) {
	term.Debugf("connecting to %s as %s", account.ServerURL(), account.Username)
	return remote.NewImap(remote.Config{
		ServerURL:           account.ServerURL(),
		Username:            account.Username,
		Password:            account.Password,
		DebugLogger:         logger,
		NoTLS:               account.NoTLS,
		SkipTLSVerification: account.SkipTLSVerification,
		Compress:            account.Compress,
		RateLimit:           float64(account.RateLimit) * 1024,
		ConnectTimeout:      connectTimeout,
	})
}

// findFolder returns the folder as listed by the server, to know its delimiter.
// When the folder is not listed, selecting it will return the error from the server.
func findFolder(session archive.Session, name string) mailbox.Info {
	folders, err := archive.ListFolders(session)
	if err != nil {
		term.Warnf("%s: assuming %q as folder delimiter", err, "/")
		return mailbox.Info{Name: name}
	}
	for _, folder := range folders {
		if folder.Name == name {
			return folder
		}
	}
	return mailbox.Info{Name: name}
}
