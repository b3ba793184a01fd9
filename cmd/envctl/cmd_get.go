package main

import (
	"fmt"
	"os"

	"github.com/pop-os/envfile"
)

func cmdList() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: envctl list <file>")
		os.Exit(1)
	}

	env, err := envfile.New(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}

	for _, key := range env.Keys() {
		value, _ := env.Get(key)
		fmt.Println(formatEntry(key, envfile.Escape(value)))
	}
}

func cmdGet() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: envctl get <file> <key>")
		os.Exit(1)
	}
	path, key := os.Args[2], os.Args[3]

	env, err := envfile.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}

	value, ok := env.Get(key)
	if !ok {
		fmt.Fprintf(os.Stderr, "envctl: %s is not set in %s\n", key, path)
		os.Exit(1)
	}
	fmt.Println(value)
}
