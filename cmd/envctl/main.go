// envctl – inspect and edit environment files (KEY=VALUE).
//
// Usage:
//
//	envctl list <file>                 – print all entries, sorted by key
//	envctl get <file> <key>            – print one value
//	envctl set <file> <key> [value]    – set a value and rewrite the file
//	envctl unset <file> <key>          – remove a key and rewrite the file
//	envctl fmt <file>                  – rewrite the file in canonical form
//	envctl export <file> [--yaml]      – dump the entries as JSON or YAML
//	envctl run <file> <cmd> [args...]  – run a command with the entries applied
//
// Writing always produces the canonical rendering: entries sorted by key,
// values quoted only when needed, comments and blank lines dropped.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		cmdList()
	case "get":
		cmdGet()
	case "set":
		cmdSet()
	case "unset":
		cmdUnset()
	case "fmt":
		cmdFmt()
	case "export":
		cmdExport()
	case "run":
		cmdRun()
	default:
		fmt.Fprintf(os.Stderr, "envctl: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `envctl – inspect and edit environment files

Query commands:
  list <file>                 Print all entries in ascending key order
  get <file> <key>            Print the value for <key> (exit 1 if absent)
  export <file> [--yaml]      Dump all entries as JSON (or YAML with --yaml)

Edit commands:
  set <file> <key> [value]    Insert or overwrite <key>, then rewrite the file
                              (--secret: prompt for the value without echo;
                              a missing file is created)
  unset <file> <key>          Remove <key>, then rewrite the file
  fmt <file>                  Rewrite the file in canonical form: sorted keys,
                              minimal quoting, comments and blank lines dropped

Run commands:
  run <file> <cmd> [args...]  Run <cmd> on a PTY with the file's entries
                              added to its environment`)
}

// stripBoolFlag removes every occurrence of the given short/long flag from
// args and returns (filtered, found). This lets the flag appear anywhere —
// before or after positional arguments.
func stripBoolFlag(args []string, short, long string) ([]string, bool) {
	out := make([]string, 0, len(args))
	found := false
	for _, a := range args {
		if (short != "" && (a == "-"+short || a == "--"+short)) || a == "-"+long || a == "--"+long {
			found = true
		} else {
			out = append(out, a)
		}
	}
	return out, found
}
