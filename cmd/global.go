package cmd

import (
	"log"

	"github.com/creativeprojects/emldump/cfg"
	"github.com/creativeprojects/emldump/lib"
)

type GlobalFlags struct {
	configFile string
	quiet      bool
	verbose    bool
}

// AccountFlags can also be set from an account of the configuration file
type AccountFlags struct {
	account      string
	username     string
	password     string
	host         string
	port         int
	localFolder  string
	remoteFolder string
	format       string
	name         string
	rateLimit    int
	compress     bool
	noTLS        bool
	insecure     bool
	logFile      string
}

type ArchiveFlags struct {
	listFolders bool
	startingID  string
	restart     bool
}

var (
	global       GlobalFlags
	accountFlags AccountFlags
	archiveFlags ArchiveFlags
	config       *cfg.Config
)

// debugLogger returns the logger for the libraries: only used in verbose mode
func debugLogger() lib.Logger {
	if global.verbose {
		return log.Default()
	}
	return &lib.NoLog{}
}
