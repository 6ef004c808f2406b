package cmd

import (
	"path/filepath"
	"testing"

	"github.com/creativeprojects/emldump/cfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultFlags() AccountFlags {
	return AccountFlags{
		host:         cfg.DefaultHost,
		port:         cfg.DefaultPort,
		localFolder:  cfg.DefaultLocal,
		remoteFolder: cfg.DefaultFolder,
		format:       "eml",
		name:         "id",
	}
}

func changedFlags(names ...string) func(string) bool {
	return func(name string) bool {
		for _, changed := range names {
			if changed == name {
				return true
			}
		}
		return false
	}
}

func TestResolveAccountFromFlags(t *testing.T) {
	flags := defaultFlags()
	flags.username = "someone@gmail.com"

	account, err := resolveAccount(cfg.Empty(), flags, changedFlags("username"))
	require.NoError(t, err)
	assert.Equal(t, "someone@gmail.com", account.Username)
	assert.Equal(t, "imap.gmail.com:993", account.ServerURL())
	assert.Equal(t, "[Gmail]/All Mail", account.Folder)
	assert.Equal(t, ".", account.Local)
	assert.Equal(t, "eml", account.Format)
	assert.Equal(t, "id", account.Name)
	assert.Equal(t, "someone@gmail.com.log", account.Log)
	assert.Empty(t, account.Password)
	assert.False(t, account.NoTLS)
}

func TestResolveAccountMissingUsername(t *testing.T) {
	_, err := resolveAccount(cfg.Empty(), defaultFlags(), changedFlags())
	assert.Error(t, err)
}

func TestResolveUnknownAccount(t *testing.T) {
	flags := defaultFlags()
	flags.account = "unknown"
	_, err := resolveAccount(cfg.Empty(), flags, changedFlags("account"))
	assert.Error(t, err)
}

func TestResolveAccountFromConfiguration(t *testing.T) {
	config := cfg.Empty()
	config.Accounts["work"] = cfg.Account{
		Host:      "imap.example.com",
		Port:      143,
		Username:  "me",
		Password:  "secret",
		Folder:    "Archive",
		Local:     "/backup",
		Format:    "maildir",
		RateLimit: 100,
		NoTLS:     true,
	}

	flags := defaultFlags()
	flags.account = "work"
	flags.name = "full"

	account, err := resolveAccount(config, flags, changedFlags("account", "name"))
	require.NoError(t, err)
	assert.Equal(t, "imap.example.com:143", account.ServerURL())
	assert.Equal(t, "me", account.Username)
	assert.Equal(t, "secret", account.Password)
	assert.Equal(t, "Archive", account.Folder)
	assert.Equal(t, "/backup", account.Local)
	assert.Equal(t, "maildir", account.Format)
	assert.Equal(t, "full", account.Name)
	assert.Equal(t, 100, account.RateLimit)
	assert.True(t, account.NoTLS)
}

func TestFlagsOverrideConfiguration(t *testing.T) {
	config := cfg.Empty()
	config.Accounts["work"] = cfg.Account{
		Host:     "imap.example.com",
		Username: "me",
		Folder:   "Archive",
		NoTLS:    true,
		Compress: true,
	}

	flags := defaultFlags()
	flags.account = "work"
	flags.remoteFolder = "INBOX"
	flags.host = "localhost"
	flags.noTLS = false

	account, err := resolveAccount(config, flags, changedFlags("account", "remote-folder", "host", "no-tls"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:993", account.ServerURL())
	assert.Equal(t, "INBOX", account.Folder)
	assert.False(t, account.NoTLS)
	// not on the command line
	assert.True(t, account.Compress)
}

func TestAccountDir(t *testing.T) {
	account := cfg.Account{Username: "../me/../../you", Local: "archive"}
	assert.Equal(t, filepath.Join("archive", "me", "you"), accountDir(account))
}
