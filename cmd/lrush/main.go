// lrush is an interactive shell over an in-memory fixedlru cache of string
// keys and values. It is a debugging and demo tool: nothing is persisted
// except the line-editing history.
//
// Usage:
//
//	lrush [flags]
//
// Flags:
//
//	-c, --capacity       Cache capacity (default: config, else 16)
//	-w, --index-width    Index width in bits: 8, 16, 32, 64 (default: narrowest that fits)
//	    --config         Path to a JSONC config file
//	-v, --verbose        Log evictions to stderr
//	-h, --help           Show help
//
// Commands (in REPL):
//
//	put <key> <value...>   Insert or replace an entry
//	get <key>              Look up an entry and mark it most recently used
//	peek <key>             Look up an entry without touching recency
//	has <key>              Report whether a key is resident
//	del <key>              Remove an entry
//	pop                    Remove the least recently used entry
//	ls                     List entries, most recently used first
//	rls                    List entries, least recently used first
//	keys                   List entries in key order
//	len                    Count entries
//	info                   Show cache info
//	check                  Verify internal invariants
//	config                 Show effective configuration
//	clear                  Remove all entries
//	bulk <count>           Insert N entries with random UUIDv7 keys
//	seq <count> [start]    Insert N entries with sequential keys
//	help                   Show this help
//	exit / quit / q        Exit
//
// When stdin is not a terminal, commands are read line by line without line
// editing, so lrush can be scripted:
//
//	printf 'put a 1\nput b 2\nls\n' | lrush -c 2
package main

import (
	"os"
	"strings"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	exitCode := Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env)

	os.Exit(exitCode)
}
