package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/passaudit/internal/model"
	"github.com/nao1215/passaudit/internal/normalize"
)

// Analysis is the mutable state carried through one pipeline run. The
// normalized forms and extracted factors live here during the run and are
// discarded with it; only Result survives and is returned to the caller.
type Analysis struct {
	// Password is the raw input under analysis. It never leaves the
	// process except as the 5-character hash prefix of the online lookup.
	Password string

	// Online enables the network-bound breach lookup for this analysis.
	Online bool

	// Forms holds the normalized comparison forms, set by NormalizeStep.
	Forms normalize.Forms

	// Factors holds the extracted risk factors, set by ExtractStep.
	Factors []model.RiskFactor

	// Result accumulates the final analysis outcome.
	Result *model.AnalysisResult
}

// NewAnalysis creates the carrier state for one password analysis.
func NewAnalysis(password string, online bool) *Analysis {
	return &Analysis{
		Password: password,
		Online:   online,
		Result:   model.NewAnalysisResult(password),
	}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, each receiving the accumulated analysis
// state from previous steps.
type Step interface {
	// Do executes the pipeline step. Soft failures (an unreachable
	// breach service, a missing corpus file) are recorded in the result
	// and return nil; only unexpected conditions return an error.
	Do(ctx context.Context, analysis *Analysis) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes an ordered list of steps over one Analysis.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution even
// when a step fails. Failed steps are logged, and subsequent steps still
// execute against whatever state has accumulated.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence over the analysis state.
// Cancellation is checked before each step; the online lookup step handles
// its own timeout internally, so a cancelled context only ever interrupts
// the in-flight network request.
func (p *Pipeline) Execute(ctx context.Context, analysis *Analysis) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("analysis cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name())

		if err := step.Do(ctx, analysis); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"error", err,
			)
			if !p.continueOnError {
				return err
			}
		}
	}

	return nil
}
