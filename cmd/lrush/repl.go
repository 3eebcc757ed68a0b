package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterh/liner"

	"github.com/calvinalkan/fixedlru/pkg/fixedlru"
)

var commands = []string{
	"put", "get", "peek", "has", "del", "delete",
	"pop", "ls", "list", "rls", "keys",
	"len", "count", "info", "check", "config",
	"clear", "bulk", "seq",
	"help", "exit", "quit", "q",
}

// REPL is the interactive command loop.
type REPL struct {
	store  store
	cfg    Config
	out    io.Writer
	logger *slog.Logger
}

// NewREPL returns a REPL over s that writes command output to out.
func NewREPL(s store, cfg Config, out io.Writer, logger *slog.Logger) *REPL {
	return &REPL{store: s, cfg: cfg, out: out, logger: logger}
}

// RunInteractive reads commands with line editing, tab completion and
// history until exit, Ctrl-C or EOF.
func (r *REPL) RunInteractive(historyPath string) error {
	state := liner.NewLiner()
	defer state.Close()

	state.SetCtrlCAborts(true)
	state.SetCompleter(r.completer)

	err := loadHistory(state, historyPath)
	if err != nil {
		r.logger.Warn("history not loaded", "path", historyPath, "err", err)
	}

	r.printf("lrush - fixedlru shell (capacity=%d, index_width=%d)\n", r.store.Cap(), r.store.IndexWidth())
	r.println("Type 'help' for available commands.")
	r.println()

	for {
		line, err := state.Prompt("lrush> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				r.println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		state.AppendHistory(line)

		if r.Execute(line) {
			break
		}
	}

	err = saveHistory(state, historyPath)
	if err != nil {
		r.logger.Warn("history not saved", "path", historyPath, "err", err)
	}

	return nil
}

// RunScript executes one command per line from in until exit or EOF.
func (r *REPL) RunScript(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if r.Execute(line) {
			return nil
		}
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

// Execute runs one command line and reports whether the REPL should exit.
func (r *REPL) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		r.println("Bye!")

		return true

	case "help", "?":
		r.printHelp()

	case "put":
		r.cmdPut(args)

	case "get":
		r.cmdGet(args, r.store.Get)

	case "peek":
		r.cmdGet(args, r.store.Peek)

	case "has":
		r.cmdHas(args)

	case "del", "delete":
		r.cmdDelete(args)

	case "pop":
		r.cmdPop()

	case "ls", "list":
		r.printEntries(r.store.All())

	case "rls":
		r.printEntries(r.store.Backward())

	case "keys":
		r.printEntries(r.store.Ascend())

	case "len", "count":
		r.printf("%d\n", r.store.Len())

	case "info":
		r.cmdInfo()

	case "check":
		r.cmdCheck()

	case "config":
		r.cmdConfig()

	case "clear":
		n := r.store.Len()
		r.store.Clear()
		r.printf("Cleared %d entries\n", n)

	case "bulk":
		r.cmdBulk(args)

	case "seq":
		r.cmdSeq(args)

	default:
		r.printf("Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return false
}

// completer provides tab completion for commands.
func (r *REPL) completer(line string) []string {
	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	r.println("Commands:")
	r.println("  put <key> <value...>   Insert or replace an entry")
	r.println("  get <key>              Look up an entry and mark it most recently used")
	r.println("  peek <key>             Look up an entry without touching recency")
	r.println("  has <key>              Report whether a key is resident")
	r.println("  del <key>              Remove an entry")
	r.println("  pop                    Remove the least recently used entry")
	r.println("  ls                     List entries, most recently used first")
	r.println("  rls                    List entries, least recently used first")
	r.println("  keys                   List entries in key order")
	r.println("  len                    Count entries")
	r.println("  info                   Show cache info")
	r.println("  check                  Verify internal invariants")
	r.println("  config                 Show effective configuration")
	r.println("  clear                  Remove all entries")
	r.println("  bulk <count>           Insert N entries with random UUIDv7 keys")
	r.println("  seq <count> [start]    Insert N entries with sequential keys")
	r.println("  help                   Show this help")
	r.println("  exit / quit / q        Exit")
}

func (r *REPL) cmdPut(args []string) {
	if len(args) < 2 {
		r.println("Usage: put <key> <value...>")

		return
	}

	key := args[0]
	value := strings.Join(args[1:], " ")

	old, outcome := r.store.Insert(key, value)

	switch outcome {
	case fixedlru.Added:
		r.println("OK")
	case fixedlru.Replaced:
		r.printf("OK (replaced %q)\n", old.Value)
	case fixedlru.Evicted:
		r.printf("OK (evicted %s = %s)\n", old.Key, old.Value)
	case fixedlru.Rejected:
		r.println("Rejected: cache has capacity 0")
	}
}

func (r *REPL) cmdGet(args []string, lookup func(string) (string, bool)) {
	if len(args) != 1 {
		r.println("Usage: get|peek <key>")

		return
	}

	value, ok := lookup(args[0])
	if !ok {
		r.println("(not found)")

		return
	}

	r.println(value)
}

func (r *REPL) cmdHas(args []string) {
	if len(args) != 1 {
		r.println("Usage: has <key>")

		return
	}

	r.println(strconv.FormatBool(r.store.Contains(args[0])))
}

func (r *REPL) cmdDelete(args []string) {
	if len(args) != 1 {
		r.println("Usage: del <key>")

		return
	}

	value, ok := r.store.Remove(args[0])
	if !ok {
		r.println("(not found)")

		return
	}

	r.printf("Deleted %s = %s\n", args[0], value)
}

func (r *REPL) cmdPop() {
	entry, ok := r.store.RemoveOldest()
	if !ok {
		r.println("(empty)")

		return
	}

	r.printf("Popped %s = %s\n", entry.Key, entry.Value)
}

func (r *REPL) printEntries(seq fixedlru.Seq[string, string]) {
	count := 0

	for key, value := range seq {
		r.printf("%s = %s\n", key, value)
		count++
	}

	if count == 0 {
		r.println("(empty)")
	}
}

func (r *REPL) cmdInfo() {
	stats := r.store.Stats()

	r.printf("Cache Info:\n")
	r.printf("  Capacity:      %d\n", stats.Cap)
	r.printf("  Entries:       %d\n", stats.Len)
	r.printf("  Index width:   %d bits\n", r.store.IndexWidth())
	r.printf("  Slots used:    %d (free chain %d)\n", stats.Highwater, stats.FreeChain)
	r.printf("  Footprint:     %d bytes\n", stats.Footprint)
}

func (r *REPL) cmdCheck() {
	err := r.store.CheckInvariants()
	if err != nil {
		r.printf("Error: %v\n", err)

		return
	}

	r.println("OK")
}

func (r *REPL) cmdConfig() {
	text, err := FormatConfig(r.cfg)
	if err != nil {
		r.printf("Error: %v\n", err)

		return
	}

	r.println(text)
}

func (r *REPL) cmdBulk(args []string) {
	if len(args) != 1 {
		r.println("Usage: bulk <count>")

		return
	}

	count, err := strconv.Atoi(args[0])
	if err != nil || count < 1 {
		r.println("Error: count must be a positive integer")

		return
	}

	start := time.Now()
	evicted := 0

	for i := range count {
		id, err := uuid.NewV7()
		if err != nil {
			r.printf("Error generating key: %v\n", err)

			return
		}

		_, outcome := r.store.Insert(id.String(), "v"+strconv.Itoa(i))
		if outcome == fixedlru.Evicted {
			evicted++
		}
	}

	r.printf("Inserted %d entries (%d evicted) in %v\n", count, evicted, time.Since(start))
}

func (r *REPL) cmdSeq(args []string) {
	if len(args) < 1 || len(args) > 2 {
		r.println("Usage: seq <count> [start]")

		return
	}

	count, err := strconv.Atoi(args[0])
	if err != nil || count < 1 {
		r.println("Error: count must be a positive integer")

		return
	}

	first := 0
	if len(args) == 2 {
		first, err = strconv.Atoi(args[1])
		if err != nil || first < 0 {
			r.println("Error: start must be a non-negative integer")

			return
		}
	}

	evicted := 0

	for i := first; i < first+count; i++ {
		// Zero-padded so key order matches numeric order.
		_, outcome := r.store.Insert(fmt.Sprintf("%010d", i), strconv.Itoa(i))
		if outcome == fixedlru.Evicted {
			evicted++
		}
	}

	r.printf("Inserted %d entries (%d evicted)\n", count, evicted)
}

func (r *REPL) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

func (r *REPL) println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}
