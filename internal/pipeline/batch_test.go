package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/nao1215/passaudit/internal/breach"
	"github.com/nao1215/passaudit/internal/model"
	"github.com/nao1215/passaudit/internal/suggest"
)

// TestProcessBatch tests that results come back complete and in input order.
func TestProcessBatch(t *testing.T) {
	t.Parallel()

	corpus := breach.NewCorpus(nil)
	generator := suggest.NewGenerator(corpus)
	factory := func() *Pipeline {
		return DefaultPipeline(corpus, nil, generator, nil)
	}

	passwords := []string{"password", "Tr0ub4dor&3xyz!Q", "aaaa1111"}
	processor := NewBatchProcessor(factory, WithConcurrency(2))

	results, err := processor.ProcessBatch(context.Background(), passwords)
	if err != nil {
		t.Fatalf("ProcessBatch() returned unexpected error: %v", err)
	}
	if len(results) != len(passwords) {
		t.Fatalf("got %d results, expected %d", len(results), len(passwords))
	}

	for i, result := range results {
		if result == nil {
			t.Fatalf("result %d is nil", i)
		}
		if result.Password != passwords[i] {
			t.Errorf("result %d is for %q, expected %q", i, result.Password, passwords[i])
		}
	}

	if results[1].Label != model.LabelLow {
		t.Errorf("strong password labeled %v, expected %v", results[1].Label, model.LabelLow)
	}
	if !results[0].OfflineHit {
		t.Error("corpus member not flagged as an offline hit")
	}
}

// TestProcessBatchWithCallback tests that the callback fires once per
// password with the matching index.
func TestProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	corpus := breach.NewCorpus(nil)
	generator := suggest.NewGenerator(corpus)
	factory := func() *Pipeline {
		return DefaultPipeline(corpus, nil, generator, nil)
	}

	passwords := []string{"alpha1!", "beta2@", "gamma3#", "delta4$"}
	processor := NewBatchProcessor(factory)

	var calls atomic.Int64
	err := processor.ProcessBatchWithCallback(context.Background(), passwords, func(i int, result *model.AnalysisResult) {
		calls.Add(1)
		if result.Password != passwords[i] {
			t.Errorf("callback index %d carries result for %q, expected %q", i, result.Password, passwords[i])
		}
	})
	if err != nil {
		t.Fatalf("ProcessBatchWithCallback() returned unexpected error: %v", err)
	}
	if got := calls.Load(); got != int64(len(passwords)) {
		t.Errorf("callback fired %d times, expected %d", got, len(passwords))
	}
}

// failingStep fails every execution.
type failingStep struct{}

func (failingStep) Name() string { return "failing" }

func (failingStep) Do(_ context.Context, _ *Analysis) error {
	return errors.New("step failed")
}

// TestProcessBatchPropagatesError tests that a pipeline failure surfaces from
// the batch.
func TestProcessBatchPropagatesError(t *testing.T) {
	t.Parallel()

	factory := func() *Pipeline {
		p := New()
		p.AddStep(failingStep{})
		return p
	}

	processor := NewBatchProcessor(factory, WithConcurrency(1))
	if _, err := processor.ProcessBatch(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("ProcessBatch() returned nil error, expected a step failure")
	}
}

// TestProcessBatchEmpty tests the zero-password batch.
func TestProcessBatchEmpty(t *testing.T) {
	t.Parallel()

	processor := NewBatchProcessor(func() *Pipeline { return New() })
	results, err := processor.ProcessBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("ProcessBatch() returned unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results for an empty batch", len(results))
	}
}
