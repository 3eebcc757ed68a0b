package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"
)

// Run is the entry point behind main. It returns the process exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	flagSet := flag.NewFlagSet("lrush", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	capacity := flagSet.IntP("capacity", "c", 0, "Cache capacity (default: config, else 16)")
	indexWidth := flagSet.IntP("index-width", "w", 0, "Index width in bits: 8, 16, 32, 64 (default: narrowest that fits)")
	configPath := flagSet.String("config", "", "Path to a JSONC config file")
	verbose := flagSet.BoolP("verbose", "v", false, "Log evictions to stderr")
	help := flagSet.BoolP("help", "h", false, "Show help")

	var argv []string
	if len(args) > 1 {
		argv = args[1:]
	}

	parseErr := flagSet.Parse(argv)
	if parseErr != nil {
		fprintln(errOut, "error:", parseErr)
		printUsage(errOut, flagSet)

		return 1
	}

	if *help {
		printUsage(out, flagSet)

		return 0
	}

	if flagSet.NArg() > 0 {
		fprintln(errOut, "error:", fmt.Errorf("%w: %v", errUnexpectedArgs, flagSet.Args()))
		printUsage(errOut, flagSet)

		return 1
	}

	cliOverrides := Config{Capacity: *capacity, IndexWidth: *indexWidth}
	cliSet := map[string]bool{
		keyCapacity:   flagSet.Changed("capacity"),
		keyIndexWidth: flagSet.Changed("index-width"),
	}

	cfg, _, err := LoadConfig(*configPath, cliOverrides, cliSet, env)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	s, err := newStore(cfg.Capacity, cfg.IndexWidth, logger)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	repl := NewREPL(s, cfg, out, logger)

	if f, ok := stdin.(*os.File); ok && isTerminal(f.Fd()) {
		err = repl.RunInteractive(historyPath(cfg, env))
	} else {
		err = repl.RunScript(stdin)
	}

	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	return 0
}

// historyPath resolves the configured history file. Empty disables history.
func historyPath(cfg Config, env map[string]string) string {
	switch cfg.History {
	case historyOff:
		return ""
	case "":
		return defaultHistoryPath(env)
	default:
		return cfg.History
	}
}

func printUsage(w io.Writer, flagSet *flag.FlagSet) {
	fprintln(w, "Usage: lrush [flags]")
	fprintln(w)
	fprintln(w, "Interactive shell over a fixed-capacity LRU cache.")
	fprintln(w, "Commands are read from stdin when it is not a terminal.")
	fprintln(w)
	fprintln(w, "Flags:")
	fprint(w, flagSet.FlagUsages())
	fprintln(w)
	fprintln(w, "Environment:")
	fprintln(w, "  LRUSH_CAPACITY, LRUSH_INDEX_WIDTH, LRUSH_HISTORY")
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func fprint(w io.Writer, a ...any) {
	_, _ = fmt.Fprint(w, a...)
}
