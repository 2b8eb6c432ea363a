// Package main is the entry point for the modgen CLI.
// modgen samples values of the modifier and character classes and lists the
// shrink candidates a property driver would try for a given value.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nomagicln/modgen/internal/catalog"
	"github.com/nomagicln/modgen/pkg/cli"
	"github.com/nomagicln/modgen/pkg/completion"
	"github.com/nomagicln/modgen/pkg/config"
	"github.com/nomagicln/modgen/pkg/filter"
)

// Build information, set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// Already formatted and printed by Execute
		os.Exit(1)
	}
}

// app holds the dependencies shared by all subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	logLevel   string

	cfg       *config.Config
	logger    *zap.Logger
	classes   *catalog.Catalog
	completer *completion.Provider
	formatter *cli.ErrorFormatter
}

// Execute runs the root command with args and reports errors on stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	classes := catalog.New()
	a := &app{
		stdout:    stdout,
		stderr:    stderr,
		cfg:       config.NewConfig(),
		logger:    zap.NewNop(),
		classes:   classes,
		completer: completion.NewProvider(classes),
		formatter: cli.NewErrorFormatter(),
	}

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	_ = a.logger.Sync()
	if err != nil {
		fmt.Fprintln(stderr, a.formatter.FormatError(err))
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modgen",
		Short: "modgen - sample and shrink property-test values",
		Long: `modgen samples values of the generator classes used in property tests
and lists the shrink candidates tried for a failing value.

Classes cover sign and ordering invariants, full-range and size-scaled
integers, and character/string classes.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to the config file (default: $MODGEN_CONFIG_DIR/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides the config file)")
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", a.completeFlag("log-level"))

	rootCmd.AddCommand(
		newClassesCmd(a),
		newSampleCmd(a),
		newShrinkCmd(a),
	)

	return rootCmd
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	path := a.configPath
	if path == "" {
		mgr, err := config.NewManager()
		if err != nil {
			return err
		}
		path = mgr.Path()
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := config.ValidateConfig(cfg); err != nil {
			return err
		}
	}
	a.cfg = cfg

	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}
	a.logger = newLogger(a.stderr, level)
	a.logger.Debug("Loaded config", zap.String("path", path), zap.Int("size", cfg.SizeOrDefault()))
	return nil
}

func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// completeClassNames completes class names for the first argument.
func (a *app) completeClassNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return a.completer.CompleteClassNames(toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeFlag completes the values of the named flag.
func (a *app) completeFlag(name string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return a.completer.CompleteFlagValues(name, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// newClassesCmd creates the classes subcommand
func newClassesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classes [family]",
		Short: "List the available classes",
		Long: `List the available classes.

With a family argument, only classes with a dash separated part starting
with it are listed.

Example:
  modgen classes
  modgen classes int
  modgen classes string`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.classes.Entries()
			if len(args) == 1 {
				entries = entries[:0]
				for _, name := range a.completer.CompleteClassFamilies(args[0]) {
					entry, err := a.classes.Lookup(name)
					if err != nil {
						return err
					}
					entries = append(entries, entry)
				}
				if len(entries) == 0 {
					return &catalog.UnknownClassError{Name: args[0], Known: a.classes.Names()}
				}
			}
			return cli.RenderClasses(a.stdout, entries, cli.IsTerminal(a.stdout))
		},
	}
}

// newSampleCmd creates the sample subcommand
func newSampleCmd(a *app) *cobra.Command {
	var (
		count   int
		size    int
		seed    int64
		workers int
		where   string
	)

	cmd := &cobra.Command{
		Use:   "sample <class>",
		Short: "Print generated values of a class",
		Long: `Print generated values of a class, one per line.

Sample i is drawn from seed+i, so a run is reproducible from its seed
regardless of --workers. With --where, draws are repeated at the same
--size until the condition holds; a condition the class can never meet
within that size never returns.

Example:
  modgen sample positive-int --count 5
  modgen sample wide-int8 --seed 42
  modgen sample narrow-int --size 100 --where 'Gt(10) && Odd()'`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeClassNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.classes.Lookup(args[0])
			if err != nil {
				return err
			}

			opts := catalog.SampleOptions{
				Count:   a.cfg.Count,
				Size:    a.cfg.SizeOrDefault(),
				Workers: a.cfg.Workers,
			}
			if cmd.Flags().Changed("count") {
				opts.Count = count
			}
			if cmd.Flags().Changed("size") {
				opts.Size = size
			}
			var fixed bool
			opts.Seed, fixed = a.cfg.FixedSeed()
			if cmd.Flags().Changed("seed") {
				opts.Seed, fixed = seed, true
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if opts.Size < 0 {
				return &config.ValidationError{Field: "size", Reason: "must not be negative"}
			}
			if opts.Workers <= 0 {
				return &config.ValidationError{Field: "workers", Reason: "must be positive"}
			}
			if !fixed {
				opts.Seed = time.Now().UnixNano()
			}
			if where != "" {
				match, err := filter.Compile(where)
				if err != nil {
					return err
				}
				opts.Match = match
			}

			a.logger.Info("Sampling",
				zap.String("class", entry.Name),
				zap.Int("count", opts.Count),
				zap.Int("size", opts.Size),
				zap.Int64("seed", opts.Seed),
				zap.Int("workers", opts.Workers))

			values, err := entry.SampleN(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("sampling %s failed: %w", entry.Name, err)
			}
			for _, v := range values {
				fmt.Fprintln(a.stdout, v.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", config.DefaultCount, "Number of values to print")
	cmd.Flags().IntVarP(&size, "size", "s", config.DefaultSize, "Size parameter passed to the generator")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (picked and logged when unset)")
	cmd.Flags().IntVarP(&workers, "workers", "w", config.DefaultWorkers, "Number of parallel workers")
	cmd.Flags().StringVar(&where, "where", "", "Only print values matching this condition")

	return cmd
}

// newShrinkCmd creates the shrink subcommand
func newShrinkCmd(a *app) *cobra.Command {
	var (
		orderName string
		rank      int
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "shrink <class> <value>",
		Short: "Print the shrink candidates of a value",
		Long: `Print the shrink candidates of a value, in the order a property driver
tries them.

Orders:
  default  candidates of the class shrinker
  double   one-step candidates, then the candidates of each of them
  ranked   candidates reordered around --rank, each prefixed with its own rank

Example:
  modgen shrink positive-int 100
  modgen shrink sorted-ints 1,5,9 --order double
  modgen shrink narrow-int 64 --order ranked --rank 5`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: a.completeClassNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.classes.Lookup(args[0])
			if err != nil {
				return err
			}
			order, err := catalog.ParseOrder(orderName)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Limit
			}
			if limit <= 0 {
				return &config.ValidationError{Field: "limit", Reason: "must be positive"}
			}

			candidates, err := entry.Shrink(args[1], order, rank)
			if err != nil {
				return err
			}

			shown := candidates.Take(limit)
			a.logger.Debug("Listed shrink candidates",
				zap.String("class", entry.Name),
				zap.String("order", string(order)),
				zap.Int("shown", len(shown)))
			for _, c := range shown {
				fmt.Fprintln(a.stdout, c)
			}
			if len(shown) == 0 {
				fmt.Fprintln(a.stderr, "No shrink candidates.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&orderName, "order", "o", string(catalog.OrderDefault), "Shrink order: default, double, ranked")
	_ = cmd.RegisterFlagCompletionFunc("order", a.completeFlag("order"))
	cmd.Flags().IntVar(&rank, "rank", 0, "Rank of the value for --order ranked")
	cmd.Flags().IntVarP(&limit, "limit", "l", config.DefaultLimit, "Maximum number of candidates to print")

	return cmd
}
