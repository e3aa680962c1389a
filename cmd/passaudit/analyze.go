package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/passaudit/internal/breach"
	"github.com/nao1215/passaudit/internal/config"
	"github.com/nao1215/passaudit/internal/database"
	"github.com/nao1215/passaudit/internal/log"
	"github.com/nao1215/passaudit/internal/model"
	"github.com/nao1215/passaudit/internal/pipeline"
	"github.com/nao1215/passaudit/internal/report"
	"github.com/nao1215/passaudit/internal/suggest"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [password]...",
		Short: "Analyze passwords for weaknesses and breach exposure",
		Long: `Analyze scores one or more passwords for structural weaknesses and
breach exposure, then generates stronger replacement candidates.

Each password is checked against:
- Weakness heuristics (length, character classes, sequences, dictionary words)
- The built-in offline breach corpus, plus any configured corpus files
- Optionally, the Have I Been Pwned service via the k-anonymity protocol

The online lookup never transmits the password: only the first 5 characters
of its SHA-1 digest leave the machine.

Passing passwords as arguments exposes them to process listings and shell
history; prefer --stdin for real secrets.

Examples:
  # Analyze a single password (visible in shell history!)
  passaudit analyze 'MyP@ssw0rd'

  # Read newline-delimited passwords from stdin
  cat passwords.txt | passaudit analyze --stdin

  # Include the online Have I Been Pwned lookup
  passaudit analyze --stdin --online

  # Merge an extra breach corpus and emit a Markdown report
  passaudit analyze --stdin --corpus leaked.txt --markdown -o report.md

Configuration file (.passaudit) example:
  online: true
  timeout: 5s
  suggestions: 5
  corpusFiles:
    - /usr/share/wordlists/rockyou.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Input flags
	cmd.Flags().BoolP("stdin", "s", false,
		"Read newline-delimited passwords from stdin")

	// Online lookup flags
	cmd.Flags().Bool("online", false,
		"Check passwords against the Have I Been Pwned service (k-anonymity)")
	cmd.Flags().String("endpoint", config.DefaultOnlineEndpoint,
		"Range endpoint base URL for the online lookup")
	cmd.Flags().DurationP("timeout", "t", config.DefaultOnlineTimeout,
		"Timeout for each online lookup")

	// Analysis flags
	cmd.Flags().IntP("count", "n", config.DefaultSuggestionCount,
		"Number of replacement candidates generated per password")
	cmd.Flags().StringSlice("corpus", nil,
		"Extra breach corpus file merged into the offline corpus (repeatable)")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .passaudit in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record redacted analysis results in the history database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	// Build config from the optional config file and flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with secret masking
	cfg.Verbose = getVerboseFlag(cmd)
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Passwords given as arguments are visible in process listings
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "Warning: passwords passed as arguments are visible in process listings and shell history. Prefer --stdin.")
	}

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the optional config file and cobra flags.
// The config file is applied first; flags the user actually set override it.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently continue without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.ApplyTo(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags override config file values only when the user set them,
	// so a file value survives an untouched flag default.
	if cmd.Flags().Changed("online") {
		cfg.Online, err = cmd.Flags().GetBool("online")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.OnlineEndpoint, err = cmd.Flags().GetString("endpoint")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		cfg.OnlineTimeout, err = cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("count") {
		cfg.SuggestionCount, err = cmd.Flags().GetInt("count")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("batch") {
		cfg.BatchSize, err = cmd.Flags().GetInt("batch")
		if err != nil {
			return nil, err
		}
	}

	// Corpus files from flags are merged with those from the config file
	flagCorpus, err := cmd.Flags().GetStringSlice("corpus")
	if err != nil {
		return nil, err
	}
	cfg.CorpusFiles = append(cfg.CorpusFiles, flagCorpus...)

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// History is on by default, stored under the XDG data directory unless
	// the config file chose another location.
	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveHistory = false
		cfg.DBDir = ""
	} else {
		cfg.SaveHistory = true
		if cfg.DBDir == "" {
			cfg.DBDir = config.XDGDataDir()
		}
	}

	// Collect passwords from arguments and/or stdin
	cfg.Passwords = append(cfg.Passwords, args...)

	useStdin, err := cmd.Flags().GetBool("stdin")
	if err != nil {
		return nil, err
	}
	if useStdin {
		stdinPasswords, err := readPasswords(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read passwords from stdin: %w", err)
		}
		cfg.Passwords = append(cfg.Passwords, stdinPasswords...)
	}

	return cfg, nil
}

// readPasswords reads newline-delimited passwords. Lines are taken verbatim
// apart from the trailing newline: leading and trailing spaces can be part of
// a password, so nothing is trimmed and only fully empty lines are skipped.
func readPasswords(r io.Reader) ([]string, error) {
	var passwords []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		passwords = append(passwords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return passwords, nil
}

// runAnalyze executes the analysis.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.Passwords) == 0 {
		return errors.New("no passwords provided (pass them as arguments or use --stdin)")
	}

	logger.Info("starting analysis",
		"passwordCount", len(cfg.Passwords),
		"online", cfg.Online,
		"batchSize", cfg.BatchSize,
		"saveHistory", cfg.SaveHistory,
	)

	// Open the history database if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveHistory {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	// The corpus and generator are shared across all analyses; the corpus
	// loads lazily on first lookup and is safe for concurrent use. Drop-in
	// corpus files under the XDG data directory are merged when present.
	corpusFiles := append(config.DefaultCorpusFiles(), cfg.CorpusFiles...)
	corpus := breach.NewCorpus(corpusFiles, breach.WithCorpusLogger(logger))
	generator := suggest.NewGenerator(corpus, suggest.WithGeneratorLogger(logger))

	var checker *breach.OnlineChecker
	if cfg.Online {
		fetcher := breach.NewHTTPRangeFetcher(cfg.OnlineEndpoint)
		checker = breach.NewOnlineChecker(fetcher,
			breach.WithTimeout(cfg.OnlineTimeout),
			breach.WithOnlineLogger(logger),
		)
	}

	pipelineFactory := func() *pipeline.Pipeline {
		return pipeline.DefaultPipeline(corpus, checker, generator,
			[]pipeline.Option{
				pipeline.WithLogger(logger),
				pipeline.WithContinueOnError(true),
			},
			pipeline.WithSuggestionCount(cfg.SuggestionCount),
		)
	}

	startTime := time.Now()

	var results []*model.AnalysisResult
	var err error
	if len(cfg.Passwords) > 1 && cfg.BatchSize > 1 {
		results, err = runBatchAnalysis(ctx, cfg, pipelineFactory, logger)
	} else {
		results, err = runSequentialAnalysis(ctx, cfg, pipelineFactory, logger)
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(os.Stderr, "Analyzed %d password(s) in %s\n\n",
		len(results), elapsed.Round(time.Millisecond))

	// Generate and output the report
	if err := outputReport(cfg, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	// Save redacted records to the history database
	for _, result := range results {
		if err := saveResult(ctx, db, result, logger); err != nil {
			logger.Error("failed to save analysis record", "error", err)
		}
	}

	return nil
}

// runSequentialAnalysis analyzes passwords one at a time.
func runSequentialAnalysis(ctx context.Context, cfg *config.Config, factory func() *pipeline.Pipeline, logger *slog.Logger) ([]*model.AnalysisResult, error) {
	results := make([]*model.AnalysisResult, 0, len(cfg.Passwords))

	for _, password := range cfg.Passwords {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		analysis := pipeline.NewAnalysis(password, cfg.Online)
		if err := factory().Execute(ctx, analysis); err != nil {
			logger.Error("analysis failed", "error", err)
			return nil, err
		}
		results = append(results, analysis.Result)
	}

	return results, nil
}

// runBatchAnalysis analyzes passwords concurrently using BatchProcessor.
func runBatchAnalysis(ctx context.Context, cfg *config.Config, factory func() *pipeline.Pipeline, logger *slog.Logger) ([]*model.AnalysisResult, error) {
	logger.Debug("batch analysis",
		"passwordCount", len(cfg.Passwords),
		"concurrency", cfg.BatchSize,
	)

	bp := pipeline.NewBatchProcessor(factory,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchOnline(cfg.Online),
		pipeline.WithBatchLogger(logger),
	)

	return bp.ProcessBatch(ctx, cfg.Passwords)
}

// outputReport writes the analysis results in the requested format.
// File output redacts the analyzed passwords; a report on disk outlives the
// terminal session and must not become a plaintext password store.
func outputReport(cfg *config.Config, results []*model.AnalysisResult) error {
	var output *os.File
	toFile := cfg.ReportFile != ""
	if toFile {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	writer := selectWriter(cfg, output, toFile)

	var err error
	if len(results) == 1 {
		_, err = writer.Write(results[0])
	} else {
		_, err = writer.WriteBatch(results)
	}
	return err
}

// selectWriter picks the report writer for the configured format.
func selectWriter(cfg *config.Config, output *os.File, redact bool) report.Writer {
	switch {
	case cfg.JSONReport:
		opts := []report.JSONWriterOption{report.WithPrettyPrint()}
		if redact {
			opts = append(opts, report.WithRedaction())
		}
		return report.NewJSONWriter(output, opts...)
	case cfg.MarkdownReport:
		var opts []report.MarkdownWriterOption
		if redact {
			opts = append(opts, report.WithMarkdownRedaction())
		}
		return report.NewMarkdownWriter(output, opts...)
	default:
		opts := []report.SimpleWriterOption{report.WithVerbose(cfg.Verbose)}
		if redact {
			opts = append(opts, report.WithSimpleRedaction())
		}
		return report.NewSimpleWriter(output, opts...)
	}
}

// saveResult saves a redacted analysis record to the history database.
// If db is nil, this function is a no-op.
func saveResult(ctx context.Context, db *database.HistoryDB, result *model.AnalysisResult, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveResult(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to save analysis record: %w", err)
	}

	logger.Info("analysis record saved", "id", id)
	return nil
}
