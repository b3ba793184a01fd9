package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pop-os/envfile"
	"gopkg.in/yaml.v3"
)

// cmdExport handles: envctl export <file> [--yaml|--json]
//
// Dumps the mapping in a machine-readable format. Both encoders emit map
// keys in sorted order, so the output is deterministic like the envfile
// rendering itself. JSON is the default.
func cmdExport() {
	args, wantYAML := stripBoolFlag(os.Args[2:], "y", "yaml")
	args, _ = stripBoolFlag(args, "j", "json")
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: envctl export <file> [--yaml|--json]")
		os.Exit(1)
	}

	env, err := envfile.New(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}

	entries := make(map[string]string, env.Len())
	for _, key := range env.Keys() {
		entries[key], _ = env.Get(key)
	}

	if wantYAML {
		data, err := yaml.Marshal(entries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "envctl: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
