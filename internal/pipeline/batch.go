package pipeline

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/passaudit/internal/model"
)

// BatchProcessor analyzes multiple passwords concurrently. Each password gets
// its own pipeline instance; the loaded breach corpus is the only state
// shared between concurrent analyses.
type BatchProcessor struct {
	// pipelineFactory builds a fresh pipeline per password. A factory
	// rather than a shared instance because Analysis state is per-run.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of analyses in flight.
	concurrency int

	// online enables the network-bound lookup for every batch member.
	online bool

	// logger records batch progress at debug level.
	logger *slog.Logger
}

// BatchOption is a function that configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithConcurrency sets the maximum number of concurrent analyses.
// Defaults to the number of CPUs.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchOnline enables the online breach lookup for every password in the
// batch.
func WithBatchOnline(online bool) BatchOption {
	return func(b *BatchProcessor) {
		b.online = online
	}
}

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// NewBatchProcessor creates a BatchProcessor that builds one pipeline per
// password using the given factory.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	b := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// ProcessBatch analyzes all passwords and returns results in input order.
// The first pipeline error cancels the remaining analyses.
func (b *BatchProcessor) ProcessBatch(ctx context.Context, passwords []string) ([]*model.AnalysisResult, error) {
	results := make([]*model.AnalysisResult, len(passwords))

	err := b.ProcessBatchWithCallback(ctx, passwords, func(i int, result *model.AnalysisResult) {
		results[i] = result
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessBatchWithCallback analyzes all passwords, invoking callback once per
// completed analysis with the password's batch index. Callbacks run from
// worker goroutines; the callback must be safe for concurrent use.
func (b *BatchProcessor) ProcessBatchWithCallback(ctx context.Context, passwords []string, callback func(int, *model.AnalysisResult)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	b.logger.Debug("starting batch analysis",
		"passwords", len(passwords),
		"concurrency", b.concurrency,
		"online", b.online,
	)

	for i, password := range passwords {
		g.Go(func() error {
			analysis := NewAnalysis(password, b.online)
			if err := b.pipelineFactory().Execute(ctx, analysis); err != nil {
				return err
			}
			callback(i, analysis.Result)
			return nil
		})
	}

	return g.Wait()
}
