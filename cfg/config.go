package cfg

import (
	"fmt"
	"io"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost   = "imap.gmail.com"
	DefaultPort   = 993
	DefaultFolder = "[Gmail]/All Mail"
	DefaultLocal  = "."
)

type Config struct {
	Accounts map[string]Account `yaml:"accounts"`
}

type Account struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Folder is the remote folder to archive
	Folder string `yaml:"folder"`
	// Local is the root directory of the archive
	Local  string `yaml:"local"`
	Format string `yaml:"format"`
	Name   string `yaml:"name"`
	// RateLimit in KiB per second
	RateLimit           int    `yaml:"rateLimit"`
	Compress            bool   `yaml:"compress"`
	NoTLS               bool   `yaml:"noTLS"`
	SkipTLSVerification bool   `yaml:"skipTLSVerification"`
	Log                 string `yaml:"log"`
}

// ServerURL returns host:port
func (a Account) ServerURL() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func newConfig() *Config {
	return &Config{
		Accounts: make(map[string]Account),
	}
}

// LoadFromFile loads the configuration from the file
func LoadFromFile(fileName string) (*Config, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(file)
}

// Load decodes and validates the configuration. An empty document is a valid configuration.
func Load(reader io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(reader)
	config := newConfig()
	err := decoder.Decode(config)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if config.Accounts == nil {
		config.Accounts = make(map[string]Account)
	}
	err = validateConfiguration(config)
	if err != nil {
		return nil, err
	}
	return config, nil
}

// Empty returns a configuration without any account
func Empty() *Config {
	return newConfig()
}

func validateConfiguration(config *Config) error {
	for name, account := range config.Accounts {
		if account.Port < 0 || account.Port > 65535 {
			return fmt.Errorf("account %q: invalid port %d", name, account.Port)
		}
		if account.RateLimit < 0 {
			return fmt.Errorf("account %q: invalid rate limit %d", name, account.RateLimit)
		}
	}
	return nil
}
