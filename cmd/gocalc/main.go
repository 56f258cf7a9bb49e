// Command gocalc is a command line front end for the calculator core.
//
// Usage:
//
//	gocalc [flags] eval <expression>
//	gocalc [flags] convert <number> <source-base> <target-base>
//	gocalc [flags] history [-n count] [-clear]
//
// Every evaluation and conversion is journaled to a SQLite database
// (see -db) unless -no-history is given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sandrolain/gocalc"
	"github.com/sandrolain/gocalc/pkg/history"
	"github.com/sandrolain/gocalc/pkg/parser"
	"github.com/sandrolain/gocalc/pkg/types"
)

// errUsage is returned for bad invocations; main exits with status 2.
var errUsage = errors.New("usage")

type config struct {
	dbPath    string
	noHistory bool
	maxLength int
	debug     bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cfg config
	fs := flag.NewFlagSet(gocalc.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.dbPath, "db", "", "History database path (default: <user config dir>/gocalc/history.db)")
	fs.BoolVar(&cfg.noHistory, "no-history", false, "Do not journal calculations")
	fs.IntVar(&cfg.maxLength, "max-length", parser.DefaultMaxLength, "Maximum number of operators in an expression")
	fs.BoolVar(&cfg.debug, "debug", false, "Log tokenization and evaluation to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "%s %s\n\nUsage:\n", gocalc.Name, gocalc.Version())
		fmt.Fprintf(stderr, "  %s [flags] eval <expression>\n", gocalc.Name)
		fmt.Fprintf(stderr, "  %s [flags] convert <number> <source-base> <target-base>\n", gocalc.Name)
		fmt.Fprintf(stderr, "  %s [flags] history [-n count] [-clear]\n\nFlags:\n", gocalc.Name)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	level := slog.LevelInfo
	if cfg.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "eval":
		if len(rest) == 0 {
			fs.Usage()
			return errUsage
		}
		return withJournal(ctx, cfg, func(j *history.Journal) error {
			return runEval(ctx, cfg, logger, j, strings.Join(rest, ""), stdout)
		})
	case "convert":
		if len(rest) != 3 {
			fs.Usage()
			return errUsage
		}
		return withJournal(ctx, cfg, func(j *history.Journal) error {
			return runConvert(ctx, logger, j, rest, stdout)
		})
	case "history":
		return runHistory(ctx, cfg, rest, stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, gocalc.Version())
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return errUsage
	}
}

func runEval(ctx context.Context, cfg config, logger *slog.Logger, j *history.Journal, expression string, stdout io.Writer) error {
	v, err := gocalc.EvalWithContext(ctx, expression,
		gocalc.WithMaxLength(cfg.maxLength),
		gocalc.WithLogger(logger),
		gocalc.WithDebug(cfg.debug),
	)
	entry := history.Entry{Kind: history.KindEvaluate, Input: expression}
	if err == nil {
		entry.Output = strconv.FormatInt(v, 10)
	}
	record(ctx, logger, j, entry, err)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, v)
	return nil
}

func runConvert(ctx context.Context, logger *slog.Logger, j *history.Journal, args []string, stdout io.Writer) error {
	var nums [3]int64
	for i, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", a)
		}
		nums[i] = n
	}
	digits, err := gocalc.ConvertBase(nums[0], nums[1], nums[2])
	record(ctx, logger, j, history.Entry{
		Kind:   history.KindConvert,
		Input:  strings.Join(args, " "),
		Output: digits,
	}, err)
	if err != nil {
		return err
	}
	logger.Debug("converted number", "number", nums[0], "source_base", nums[1], "target_base", nums[2], "digits", digits)
	fmt.Fprintln(stdout, digits)
	return nil
}

func runHistory(ctx context.Context, cfg config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("n", 20, "Number of entries to show")
	clearAll := fs.Bool("clear", false, "Delete all entries")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if cfg.noHistory {
		return errors.New("history is disabled (-no-history)")
	}

	return withJournal(ctx, cfg, func(j *history.Journal) error {
		if *clearAll {
			return j.Clear(ctx)
		}
		entries, err := j.Recent(ctx, *limit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			result := e.Output
			if e.Failed() {
				result = "error " + e.ErrorCode
			}
			fmt.Fprintf(stdout, "%s  %-8s %s = %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Input, result)
		}
		return nil
	})
}

// withJournal opens the journal for the duration of fn. fn receives nil
// when history is disabled.
func withJournal(ctx context.Context, cfg config, fn func(*history.Journal) error) error {
	if cfg.noHistory {
		return fn(nil)
	}
	path, err := journalPath(cfg)
	if err != nil {
		return err
	}
	j, err := history.Open(ctx, path)
	if err != nil {
		return err
	}
	defer j.Close()
	return fn(j)
}

// journalPath resolves the database location, creating the default
// application directory when needed.
func journalPath(cfg config) (string, error) {
	if cfg.dbPath != "" {
		return cfg.dbPath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	dir = filepath.Join(dir, gocalc.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// record journals a calculation. Journal failures are logged, never
// returned: the calculation result matters more than its record.
func record(ctx context.Context, logger *slog.Logger, j *history.Journal, e history.Entry, calcErr error) {
	if j == nil {
		return
	}
	if calcErr != nil {
		e.Output = ""
		e.ErrorCode = string(types.CodeOf(calcErr))
	}
	if _, err := j.Record(ctx, e); err != nil {
		logger.Warn("failed to record calculation", "error", err)
	}
}
