package pipeline

import (
	"context"

	"github.com/nao1215/passaudit/internal/breach"
	"github.com/nao1215/passaudit/internal/heuristic"
	"github.com/nao1215/passaudit/internal/normalize"
	"github.com/nao1215/passaudit/internal/suggest"
)

// NormalizeStep computes the normalized comparison forms of the password.
type NormalizeStep struct{}

// NewNormalizeStep creates a new NormalizeStep.
func NewNormalizeStep() *NormalizeStep {
	return &NormalizeStep{}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do normalizes the password into its lowercase and desubstituted forms.
func (s *NormalizeStep) Do(_ context.Context, analysis *Analysis) error {
	analysis.Forms = normalize.Normalize(analysis.Password)
	return nil
}

// ExtractStep evaluates the heuristic risk factors over the password and its
// normalized forms.
type ExtractStep struct{}

// NewExtractStep creates a new ExtractStep.
func NewExtractStep() *ExtractStep {
	return &ExtractStep{}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do extracts the fixed-order factor list and records it on the result.
func (s *ExtractStep) Do(_ context.Context, analysis *Analysis) error {
	analysis.Factors = heuristic.Extract(analysis.Password, analysis.Forms)
	analysis.Result.Factors = analysis.Factors
	return nil
}

// OfflineBreachStep matches the normalized forms against the offline breach
// corpus.
type OfflineBreachStep struct {
	corpus *breach.Corpus
}

// NewOfflineBreachStep creates an OfflineBreachStep over the given corpus.
func NewOfflineBreachStep(corpus *breach.Corpus) *OfflineBreachStep {
	return &OfflineBreachStep{corpus: corpus}
}

// Name returns the step name.
func (s *OfflineBreachStep) Name() string {
	return "offline-breach"
}

// Do records whether any normalized form appears in the offline corpus.
func (s *OfflineBreachStep) Do(_ context.Context, analysis *Analysis) error {
	analysis.Result.OfflineHit = s.corpus.IsBreached(analysis.Forms)
	return nil
}

// OnlineBreachStep runs the k-anonymity lookup against the breach service.
// The step is skipped entirely unless the analysis requested an online check;
// lookup failures degrade to an unchecked result and never fail the step.
type OnlineBreachStep struct {
	checker *breach.OnlineChecker
}

// NewOnlineBreachStep creates an OnlineBreachStep using the given checker.
func NewOnlineBreachStep(checker *breach.OnlineChecker) *OnlineBreachStep {
	return &OnlineBreachStep{checker: checker}
}

// Name returns the step name.
func (s *OnlineBreachStep) Name() string {
	return "online-breach"
}

// Do performs the online lookup, preserving the offline verdict already
// recorded on the result.
func (s *OnlineBreachStep) Do(ctx context.Context, analysis *Analysis) error {
	if !analysis.Online || s.checker == nil {
		return nil
	}

	online := s.checker.Check(ctx, analysis.Password)
	online.OfflineHit = analysis.Result.OfflineHit
	analysis.Result.BreachResult = online
	return nil
}

// ScoreStep combines the extracted factors and the breach outcome into the
// final score, label, and reasons.
type ScoreStep struct{}

// NewScoreStep creates a new ScoreStep.
func NewScoreStep() *ScoreStep {
	return &ScoreStep{}
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "score"
}

// Do scores the analysis and writes the verdict onto the result.
func (s *ScoreStep) Do(_ context.Context, analysis *Analysis) error {
	score, label, reasons := heuristic.Score(analysis.Factors, analysis.Result.BreachResult, analysis.Online)
	analysis.Result.RiskScore = score
	analysis.Result.Label = label
	analysis.Result.Reasons = reasons
	return nil
}

// SuggestStep generates replacement password candidates.
type SuggestStep struct {
	generator *suggest.Generator
	count     int
}

// NewSuggestStep creates a SuggestStep producing count candidates per run.
func NewSuggestStep(generator *suggest.Generator, count int) *SuggestStep {
	if count <= 0 {
		count = suggest.DefaultCount
	}
	return &SuggestStep{generator: generator, count: count}
}

// Name returns the step name.
func (s *SuggestStep) Name() string {
	return "suggest"
}

// Do attaches generated suggestions to the result.
func (s *SuggestStep) Do(_ context.Context, analysis *Analysis) error {
	analysis.Result.Suggestions = s.generator.Generate(analysis.Password, analysis.Forms, s.count)
	return nil
}

// DefaultPipelineOption configures DefaultPipeline.
type DefaultPipelineOption func(*defaultPipelineConfig)

type defaultPipelineConfig struct {
	suggestionCount int
}

// WithSuggestionCount overrides the number of suggestions per analysis.
func WithSuggestionCount(count int) DefaultPipelineOption {
	return func(c *defaultPipelineConfig) {
		c.suggestionCount = count
	}
}

// DefaultPipeline assembles the full analysis pipeline in its canonical
// order. A nil checker disables the online step regardless of the per-run
// Online flag.
func DefaultPipeline(corpus *breach.Corpus, checker *breach.OnlineChecker, generator *suggest.Generator, pipelineOpts []Option, opts ...DefaultPipelineOption) *Pipeline {
	cfg := defaultPipelineConfig{suggestionCount: suggest.DefaultCount}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := New(pipelineOpts...)
	p.AddSteps(
		NewNormalizeStep(),
		NewExtractStep(),
		NewOfflineBreachStep(corpus),
		NewOnlineBreachStep(checker),
		NewScoreStep(),
		NewSuggestStep(generator, cfg.suggestionCount),
	)
	return p
}
