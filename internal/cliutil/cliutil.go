// Package cliutil holds peripheral CLI plumbing kept out of the
// cryptographic core: file reading/writing, console prompting, and hex
// conversion.
package cliutil

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrIOError wraps a named file missing or unwritable. Check with
// errors.Is.
var ErrIOError = errors.New("cliutil: file missing or unwritable")

// ReadInput reads all bytes from path, or from stdin if path is empty.
func ReadInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("cliutil: read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cliutil: read %s: %w: %w", path, ErrIOError, err)
	}
	return data, nil
}

// WriteOutput writes data to path, creating or truncating it.
func WriteOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cliutil: write %s: %w: %w", path, ErrIOError, err)
	}
	return nil
}

// ToHex lowercases a byte slice into its hex representation.
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// FromHex parses a hex string, trimming surrounding whitespace.
func FromHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("cliutil: invalid hex input: %w", err)
	}
	return b, nil
}

// PromptPassword reads a password from the controlling terminal
// without echoing it, falling back to a plain line read when stdin is
// not a terminal (e.g. piped input in scripts/tests).
func PromptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("cliutil: read password: %w", err)
		}
		return string(b), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("cliutil: read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
