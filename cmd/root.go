package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/creativeprojects/emldump/cfg"
	"github.com/creativeprojects/emldump/storage"
	"github.com/creativeprojects/emldump/term"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "emldump.yaml"

var rootCmd = &cobra.Command{
	Use:   "emldump",
	Short: "Archive all the messages of an IMAP folder into .eml files",
	Long: "\nArchive all the messages of an IMAP folder into .eml files, one file per message." +
		"\nA new run resumes after the last message archived by the previous one.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runArchive,
}

func init() {
	cobra.OnInitialize(initConfig, initLog)
	flag := rootCmd.PersistentFlags()
	flag.StringVarP(&global.configFile, "config", "c", defaultConfigFile, "configuration file")
	flag.BoolVarP(&global.quiet, "quiet", "q", false, "only display warnings and errors")
	flag.BoolVarP(&global.verbose, "verbose", "v", false, "display debugging information")

	flag.StringVarP(&accountFlags.account, "account", "a", "", "account name from the configuration file")
	flag.StringVarP(&accountFlags.username, "username", "u", "", "account username")
	flag.StringVarP(&accountFlags.password, "password", "p", "", "account password (prompted when missing)")
	flag.StringVarP(&accountFlags.host, "host", "s", cfg.DefaultHost, "IMAP server")
	flag.IntVar(&accountFlags.port, "port", cfg.DefaultPort, "IMAP server port")
	flag.StringVarP(&accountFlags.localFolder, "local-folder", "l", cfg.DefaultLocal, "root directory of the archive")
	flag.BoolVar(&accountFlags.compress, "compress", false, "enable compression when the server supports it")
	flag.BoolVar(&accountFlags.noTLS, "no-tls", false, "connect without TLS")
	flag.BoolVar(&accountFlags.insecure, "insecure", false, "skip verification of the server certificate")

	flag = rootCmd.Flags()
	flag.StringVarP(&accountFlags.remoteFolder, "remote-folder", "r", cfg.DefaultFolder, "folder to archive")
	flag.StringVar(&accountFlags.format, "format", string(storage.EML), "output format: eml or maildir")
	flag.StringVar(&accountFlags.name, "name", "id", "file name format: id, subject or full")
	flag.IntVar(&accountFlags.rateLimit, "rate-limit", 0, "download limit in KiB/s (0 = unlimited)")
	flag.StringVar(&accountFlags.logFile, "log", "", "file receiving the messages that could not be archived (default \"{username}.log\")")
	flag.BoolVar(&archiveFlags.listFolders, "list-folders", false, "display the list of folders and exit")
	flag.StringVar(&archiveFlags.startingID, "starting-id", "", "first message ID to archive (default: resume after the last run)")
	flag.BoolVar(&archiveFlags.restart, "restart", false, "forget the position saved by the previous runs and archive the whole folder")
}

func initConfig() {
	var err error
	config, err = cfg.LoadFromFile(global.configFile)
	if err == nil {
		return
	}
	if errors.Is(err, fs.ErrNotExist) && !rootCmd.PersistentFlags().Changed("config") {
		config = cfg.Empty()
		return
	}
	term.Errorf("cannot open or read configuration file: %s", err)
	os.Exit(1)
}

func initLog() {
	switch {
	case global.verbose:
		term.SetLevel(term.LevelDebug)
	case global.quiet:
		term.SetLevel(term.LevelWarn)
	}
}

func Execute(version, commit, date, builtBy string) {
	setApp(version, commit, date, builtBy)
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		term.Error(err)
		os.Exit(1)
	}
}
