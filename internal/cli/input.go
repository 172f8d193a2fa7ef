package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// promptPassword asks for a password on stderr. On a terminal the input is
// not echoed; otherwise a single line is read from the command's stdin.
func promptPassword(cmd *cobra.Command) (string, error) {
	w := cmd.ErrOrStderr()
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return "", err
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(int(f.Fd())) {
		pw, err := readPassword(int(f.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", usageErrorf("no password given and none on stdin")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// passwordOrPrompt returns the --password value, prompting when it is empty.
func passwordOrPrompt(cmd *cobra.Command, flagValue string) (string, error) {
	if cmd.Flags().Changed("password") {
		return flagValue, nil
	}
	return promptPassword(cmd)
}
