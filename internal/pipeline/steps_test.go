package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/passaudit/internal/breach"
	"github.com/nao1215/passaudit/internal/model"
	"github.com/nao1215/passaudit/internal/suggest"
)

// passwordSuffix is the trailing 35 hex characters of the SHA-1 digest of
// "password" (full digest 5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8).
const passwordSuffix = "1E4C9B93F3F0682250B6CF8331B7EE68FD8"

// fakeFetcher is an in-memory RangeFetcher returning a canned body or error.
type fakeFetcher struct {
	body string
	err  error
}

func (f *fakeFetcher) FetchRange(_ context.Context, _ string) (string, error) {
	return f.body, f.err
}

// newTestPipeline assembles the canonical pipeline over an empty-path corpus
// and the given fetcher. A nil fetcher leaves the online step disabled.
func newTestPipeline(fetcher breach.RangeFetcher) *Pipeline {
	corpus := breach.NewCorpus(nil)
	var checker *breach.OnlineChecker
	if fetcher != nil {
		checker = breach.NewOnlineChecker(fetcher)
	}
	return DefaultPipeline(corpus, checker, suggest.NewGenerator(corpus), nil)
}

// TestDefaultPipelineOfflineHit tests the full offline path: a password that
// desubstitutes into a corpus entry must come back breached, scored at the
// floor, and labeled high.
func TestDefaultPipelineOfflineHit(t *testing.T) {
	t.Parallel()

	analysis := NewAnalysis("MyP@ssw0rd", false)
	if err := newTestPipeline(nil).Execute(context.Background(), analysis); err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}

	result := analysis.Result
	if !result.OfflineHit {
		t.Error("OfflineHit = false, expected true")
	}
	if result.RiskScore < model.BreachScoreFloor {
		t.Errorf("RiskScore = %.2f, expected at least %.2f", result.RiskScore, model.BreachScoreFloor)
	}
	if result.Label != model.LabelHigh {
		t.Errorf("Label = %v, expected %v", result.Label, model.LabelHigh)
	}
	if result.OnlineChecked {
		t.Error("OnlineChecked = true for an offline-only analysis")
	}

	found := false
	for _, reason := range result.Reasons {
		if strings.Contains(reason, "breach corpora") {
			found = true
		}
	}
	if !found {
		t.Errorf("Reasons %v do not mention the breach corpus match", result.Reasons)
	}
}

// TestDefaultPipelineEmptyPassword tests that an empty input still yields a
// complete result: high label and a full set of suggestions.
func TestDefaultPipelineEmptyPassword(t *testing.T) {
	t.Parallel()

	analysis := NewAnalysis("", false)
	if err := newTestPipeline(nil).Execute(context.Background(), analysis); err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}

	result := analysis.Result
	if result.Label != model.LabelHigh {
		t.Errorf("Label = %v, expected %v", result.Label, model.LabelHigh)
	}
	if result.OfflineHit {
		t.Error("OfflineHit = true for the empty password")
	}
	if len(result.Suggestions) != suggest.DefaultCount {
		t.Errorf("got %d suggestions, expected %d", len(result.Suggestions), suggest.DefaultCount)
	}
}

// TestDefaultPipelineStrongPassword tests the low-risk path.
func TestDefaultPipelineStrongPassword(t *testing.T) {
	t.Parallel()

	analysis := NewAnalysis("Tr0ub4dor&3xyz!Q", false)
	if err := newTestPipeline(nil).Execute(context.Background(), analysis); err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}

	if analysis.Result.Label != model.LabelLow {
		t.Errorf("Label = %v, expected %v", analysis.Result.Label, model.LabelLow)
	}
	if len(analysis.Result.Factors) != 6 {
		t.Errorf("recorded %d factors, expected 6", len(analysis.Result.Factors))
	}
}

// TestDefaultPipelineOnlineHit tests the online path with a matching range
// response: the hit must set the count, force the high label, and append the
// online reason.
func TestDefaultPipelineOnlineHit(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: "0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n" + passwordSuffix + ":42"}
	analysis := NewAnalysis("password", true)
	if err := newTestPipeline(fetcher).Execute(context.Background(), analysis); err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}

	result := analysis.Result
	if !result.OnlineChecked {
		t.Fatal("OnlineChecked = false, expected true")
	}
	if !result.OnlineHit {
		t.Fatal("OnlineHit = false, expected true")
	}
	if result.OnlineCount == nil || *result.OnlineCount != 42 {
		t.Errorf("OnlineCount = %v, expected 42", result.OnlineCount)
	}
	if result.Label != model.LabelHigh {
		t.Errorf("Label = %v, expected %v", result.Label, model.LabelHigh)
	}

	found := false
	for _, reason := range result.Reasons {
		if strings.Contains(reason, "42 occurrences") {
			found = true
		}
	}
	if !found {
		t.Errorf("Reasons %v do not mention the occurrence count", result.Reasons)
	}
}

// TestDefaultPipelineOnlineUnavailable tests that a failing lookup degrades
// to an unchecked result with the unavailability reason, without failing the
// pipeline.
func TestDefaultPipelineOnlineUnavailable(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	analysis := NewAnalysis("Tr0ub4dor&3xyz!Q", true)
	if err := newTestPipeline(fetcher).Execute(context.Background(), analysis); err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}

	result := analysis.Result
	if result.OnlineChecked {
		t.Error("OnlineChecked = true after a failed lookup")
	}

	found := false
	for _, reason := range result.Reasons {
		if strings.Contains(reason, "unavailable") {
			found = true
		}
	}
	if !found {
		t.Errorf("Reasons %v do not mention the lookup being unavailable", result.Reasons)
	}
}

// TestOnlineBreachStepSkipped tests that the online step is a no-op when the
// analysis did not request it, even with a checker wired.
func TestOnlineBreachStepSkipped(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: passwordSuffix + ":42"}
	analysis := NewAnalysis("password", false)
	if err := newTestPipeline(fetcher).Execute(context.Background(), analysis); err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}

	if analysis.Result.OnlineChecked {
		t.Error("OnlineChecked = true although the online lookup was not requested")
	}
}

// TestOnlineBreachStepPreservesOfflineHit tests that writing the online
// outcome does not erase the offline verdict.
func TestOnlineBreachStepPreservesOfflineHit(t *testing.T) {
	t.Parallel()

	step := NewOnlineBreachStep(breach.NewOnlineChecker(&fakeFetcher{body: ""}))
	analysis := NewAnalysis("password", true)
	analysis.Result.OfflineHit = true

	if err := step.Do(context.Background(), analysis); err != nil {
		t.Fatalf("Do() returned unexpected error: %v", err)
	}
	if !analysis.Result.OfflineHit {
		t.Error("OfflineHit was cleared by the online step")
	}
}

// TestWithSuggestionCount tests that the suggestion count option is honored.
func TestWithSuggestionCount(t *testing.T) {
	t.Parallel()

	corpus := breach.NewCorpus(nil)
	p := DefaultPipeline(corpus, nil, suggest.NewGenerator(corpus), nil, WithSuggestionCount(5))

	analysis := NewAnalysis("password", false)
	if err := p.Execute(context.Background(), analysis); err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}
	if len(analysis.Result.Suggestions) != 5 {
		t.Errorf("got %d suggestions, expected 5", len(analysis.Result.Suggestions))
	}
}
