package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/pop-os/envfile"
	"golang.org/x/term"
)

// cmdRun handles: envctl run <file> <command> [args...]
//
// The command runs on a PTY with every entry from the file appended to the
// inherited environment, so interactive programs (REPLs, TUIs) behave as if
// launched from a normal shell. Entries from the file win over variables
// already present in the environment.
func cmdRun() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: envctl run <file> <command> [args...]")
		os.Exit(1)
	}
	path := os.Args[2]

	env, err := envfile.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}

	cmd := exec.Command(os.Args[3], os.Args[4:]...)
	cmd.Env = childEnv(os.Environ(), env)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
	defer ptmx.Close()

	// Mirror the terminal size into the PTY, now and on every resize.
	fd := int(os.Stdin.Fd())
	winchCh := make(chan os.Signal, 1)
	signal.Notify(winchCh, syscall.SIGWINCH)
	go func() {
		for range winchCh {
			pty.InheritSize(os.Stdin, ptmx)
		}
	}()
	winchCh <- syscall.SIGWINCH

	// Raw mode so keystrokes pass through unmodified; a no-op when stdin is
	// not a terminal (e.g. piped input).
	restore := makeRaw(fd)
	defer restore()

	go io.Copy(ptmx, os.Stdin)
	// Returns when the child exits and the PTY slave side closes.
	io.Copy(os.Stdout, ptmx)

	signal.Stop(winchCh)
	// Restore the terminal before any exit below — os.Exit skips defers.
	restore()

	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
}

// makeRaw puts fd into raw mode and returns the function that restores the
// previous state. The returned function is safe to call more than once.
// When fd is not a terminal a no-op is returned.
func makeRaw(fd int) func() {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}
	}
	var restoreOnce sync.Once
	return func() {
		restoreOnce.Do(func() { term.Restore(fd, oldState) })
	}
}

// childEnv merges the file's entries into the inherited environment in the
// KEY=VALUE form exec expects. Later entries win, so appending the file's
// pairs after base gives the file precedence.
func childEnv(base []string, env *envfile.EnvFile) []string {
	merged := make([]string, 0, len(base)+env.Len())
	merged = append(merged, base...)
	for _, key := range env.Keys() {
		value, _ := env.Get(key)
		merged = append(merged, key+"="+value)
	}
	return merged
}
