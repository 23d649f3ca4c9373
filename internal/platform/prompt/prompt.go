// Package prompt reads secrets from the controlling terminal for the
// command-line tools.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyPassword is returned when the user enters nothing.
var ErrEmptyPassword = errors.New("password must not be empty")

// Seams for tests; they avoid touching a real terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
	stdin        = bufio.NewReader(os.Stdin)
)

// Password prints label to w and reads a password. On a terminal the input
// is not echoed; otherwise a single line is read from stdin so the tools can
// be driven from scripts.
func Password(w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}

	fd := int(os.Stdin.Fd())
	var pw string
	if isTerminal(fd) {
		raw, err := readPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		pw = string(raw)
	} else {
		line, err := stdin.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}

	if pw == "" {
		return "", ErrEmptyPassword
	}
	return pw, nil
}

// ConfirmedPassword reads a password twice and fails when the entries differ.
func ConfirmedPassword(w io.Writer, label string) (string, error) {
	first, err := Password(w, label)
	if err != nil {
		return "", err
	}
	second, err := Password(w, "Confirm "+strings.ToLower(label))
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passwords do not match")
	}
	return first, nil
}
