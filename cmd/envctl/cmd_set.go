package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pop-os/envfile"
	"golang.org/x/term"
)

// loadOrCreate opens the environment file at path, treating a missing file
// as an empty store bound to that path so that set can create new files.
func loadOrCreate(path string) *envfile.EnvFile {
	env, err := envfile.New(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return envfile.FromBytes(path, nil)
		}
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
	return env
}

// cmdSet handles: envctl set <file> <key> [value] [--secret]
//
// With --secret the value is read from the terminal without echo, so it
// never appears in shell history or process listings.
func cmdSet() {
	args, secret := stripBoolFlag(os.Args[2:], "s", "secret")
	if len(args) < 2 || (!secret && len(args) < 3) {
		fmt.Fprintln(os.Stderr, "usage: envctl set <file> <key> <value>\n       envctl set <file> <key> --secret")
		os.Exit(1)
	}
	path, key := args[0], args[1]

	var value string
	if secret {
		fmt.Fprintf(os.Stderr, "%sValue for %s%s (no echo): ", colorBold, key, colorReset)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "envctl: cannot read value: %v\n", err)
			os.Exit(1)
		}
		value = string(raw)
	} else {
		value = args[2]
	}

	env := loadOrCreate(path)
	env.Update(key, value)
	if err := env.Write(); err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
}

// cmdUnset handles: envctl unset <file> <key>
// Removing a key that is not present still rewrites the file canonically.
func cmdUnset() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: envctl unset <file> <key>")
		os.Exit(1)
	}
	path, key := os.Args[2], os.Args[3]

	env, err := envfile.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
	env.Unset(key)
	if err := env.Write(); err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
}

// cmdFmt handles: envctl fmt <file>
// A load immediately followed by a write: sorts keys, normalizes quoting,
// and drops comments and blank lines.
func cmdFmt() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: envctl fmt <file>")
		os.Exit(1)
	}

	env, err := envfile.New(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
	if err := env.Write(); err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
}
