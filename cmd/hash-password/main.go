// Command hash-password prints a bcrypt hash for a password read from the
// terminal. The output can be stored directly in users.password_hash.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/platform/prompt"
	"github.com/gaspigz/taskManagerClg/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

// readPassword is a seam for tests.
var readPassword = prompt.ConfirmedPassword

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "hash-password: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := readPassword(stderr, "Password")
	if err != nil {
		return err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := auth.NewBcryptHasher(*cost).Hash(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}
