package term

import (
	"errors"
	"fmt"
	"os"

	xterm "golang.org/x/term"
)

var ErrNotTerminal = errors.New("standard input is not a terminal")

// ReadPassword asks for a secret on the terminal without echoing it
func ReadPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !xterm.IsTerminal(fd) {
		return "", fmt.Errorf("cannot prompt for password: %w", ErrNotTerminal)
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := xterm.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}
