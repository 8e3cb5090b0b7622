package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/psurply/dwfv"
	"github.com/psurply/dwfv/internal/config"
	"github.com/psurply/dwfv/internal/store"
)

var (
	flagConfig   string
	flagLogLevel string

	cfg *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "dwfv",
	Short:         "Inspect and search digital waveform traces",
	Long:          "dwfv decodes Value Change Dump (VCD) traces and reports signal values at arbitrary times, searches them with a temporal query language, and exports them to SQLite.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagLogLevel != "" {
			cfg.Logging.Level = flagLogLevel
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		initLogging(cfg.Logging.Level)
		return nil
	},
	// No Run: prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", defaultConfigPath(), "configuration file (TOML)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(atCmd)
	rootCmd.AddCommand(whenCmd)
	rootCmd.AddCommand(exportCmd)
}

// defaultConfigPath looks for .dwfv.toml in the working directory.
func defaultConfigPath() string {
	return ".dwfv.toml"
}

func initLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// loadTrace decodes a trace file, logging the decode time. loadTraceAt stops
// consuming value changes past the given timestamp.
func loadTrace(path string) (*dwfv.Waveform, error) {
	return decodeFile(path, func(f *os.File) (*dwfv.Waveform, error) {
		return dwfv.Decode(f)
	})
}

func loadTraceAt(path string, limit uint64) (*dwfv.Waveform, error) {
	return decodeFile(path, func(f *os.File) (*dwfv.Waveform, error) {
		return dwfv.DecodeLimit(f, limit)
	})
}

func decodeFile(path string, decode func(*os.File) (*dwfv.Waveform, error)) (*dwfv.Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	start := time.Now()
	w, err := decode(f)
	if err != nil {
		return nil, err
	}
	slog.Debug("trace decoded",
		"file", path,
		"signals", len(w.Signals()),
		"end", w.End(),
		"timescale", w.Timescale().String(),
		"elapsed", time.Since(start))
	return w, nil
}

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Show signal statistics for a trace",
	Long:  "Decodes the trace and prints the scope tree with per-signal width, edge count, and first/last edge timestamps.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := loadTrace(args[0])
		if err != nil {
			return err
		}
		writeStats(os.Stdout, w)
		return nil
	},
}

var atCmd = &cobra.Command{
	Use:   "at <file> <time>",
	Short: "Show the value of every signal at a timestamp",
	Long:  "Decodes the trace up to the given timestamp and prints each signal's held value. Signals changing exactly at the timestamp are marked with \"->\".",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid time %q: must be a non-negative integer", args[1])
		}
		w, err := loadTraceAt(args[0], t)
		if err != nil {
			return err
		}
		writeValuesAt(os.Stdout, w, t, cfg.Output.Radix)
		return nil
	},
}

var flagFollow bool

var whenCmd = &cobra.Command{
	Use:   "when <file> <expr>",
	Short: "Show when an expression is true",
	Long: `Compiles the expression against the trace and prints each match: a
"begin-end" range for level predicates, a single timestamp for transitions.

Example expressions:

  $value = 2
  $value <- h4 and after 400
  $top.cpu.state equals b1x0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagFollow {
			return follow(args[0], args[1])
		}
		w, err := loadTrace(args[0])
		if err != nil {
			return err
		}
		return runSearch(os.Stdout, w, args[1])
	},
}

func init() {
	whenCmd.Flags().BoolVar(&flagFollow, "follow", false, "re-run the search whenever the trace file changes")
}

func runSearch(out io.Writer, w *dwfv.Waveform, expr string) error {
	results, err := dwfv.Search(w, expr)
	if err != nil {
		return err
	}
	for r := range results {
		fmt.Fprintln(out, r)
	}
	return nil
}

var exportCmd = &cobra.Command{
	Use:   "export <file> <db>",
	Short: "Export a trace to a SQLite database",
	Long:  "Decodes the trace and writes its scopes, signals, and edges to a SQLite database for ad hoc SQL analysis.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := loadTrace(args[0])
		if err != nil {
			return err
		}
		s, err := store.NewStore(args[1])
		if err != nil {
			return fmt.Errorf("creating database: %w", err)
		}
		defer s.Close()
		if err := s.Migrate(); err != nil {
			return err
		}
		if err := s.Export(w); err != nil {
			return err
		}
		n, err := s.CountEdges("")
		if err != nil {
			return err
		}
		slog.Info("trace exported", "db", args[1], "edges", n)
		return nil
	},
}
