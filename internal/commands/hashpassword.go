package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/i474232898/historical-day/internal/auth"
)

// HashPassword handles the hash-password subcommand and returns the process exit code.
func HashPassword(args []string) int {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	overwrite := fs.Bool("overwrite", false, "Overwrite an existing auth file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: historical-day hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates the admin auth file (username:argon2id-hash).\n\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  AUTH_FILE    Path to auth file (default: ./%s)\n", auth.DefaultAuthFile)
	}
	_ = fs.Parse(args)

	path := os.Getenv("AUTH_FILE")
	if path == "" {
		path = auth.DefaultAuthFile
	}

	in := bufio.NewReader(os.Stdin)
	readSecret := func(prompt string) (string, error) {
		fmt.Fprint(os.Stderr, prompt)
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stderr)
			return string(b), err
		}
		return readLine(in)
	}

	if err := runHashPassword(path, *overwrite, in, readSecret); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stderr, "Auth file created: %s (mode: 0400)\n", path)
	return 0
}

func runHashPassword(path string, overwrite bool, in *bufio.Reader, readSecret func(string) (string, error)) error {
	fmt.Fprint(os.Stderr, "Enter username: ")
	username, err := readLine(in)
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}
	if username == "" || strings.Contains(username, ":") {
		return errors.New("username must be non-empty and must not contain ':'")
	}

	password, err := readSecret("Enter password:   ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	confirm, err := readSecret("Confirm password: ")
	if err != nil {
		return fmt.Errorf("reading password confirmation: %w", err)
	}

	if password == "" {
		return errors.New("password cannot be empty")
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	return auth.CreateAuthFile(path, username, password, overwrite)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
