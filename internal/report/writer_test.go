package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/passaudit/internal/model"
)

// createTestResult creates an analysis result with sample data for testing.
func createTestResult() *model.AnalysisResult {
	result := model.NewAnalysisResult("MyP@ssw0rd")
	result.RiskScore = 0.90
	result.Label = model.LabelHigh
	result.OfflineHit = true
	result.Reasons = []string{
		"Shorter than 12 characters",
		"Matches a password found in known breach corpora",
	}
	result.Suggestions = []string{"Meadow!42xKpQ", "Mosaic?91TzWa", "Harbor-07LmXe"}
	result.Factors = []model.RiskFactor{
		{Name: model.FactorLength, Weight: 0.25, Triggered: true, Detail: "Shorter than 12 characters"},
		{Name: model.FactorDiversity, Weight: 0.15, Positive: true, Triggered: false},
	}
	result.AnalyzedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return result
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "PASSWORD RISK REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "MyP@ssw0rd") {
			t.Error("expected output to contain the analyzed password")
		}
		if !strings.Contains(output, "HIGH") {
			t.Error("expected output to contain the risk label")
		}
	})

	t.Run("writes reasons and suggestions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "breach corpora") {
			t.Error("expected output to contain the breach reason")
		}
		if !strings.Contains(output, "Meadow!42xKpQ") {
			t.Error("expected output to contain a suggestion")
		}
	})

	t.Run("redacts the password when requested", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithSimpleRedaction())

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "MyP@ssw0rd") {
			t.Error("expected the password to be redacted")
		}
		if !strings.Contains(output, model.RedactedPassword) {
			t.Error("expected output to contain the redaction marker")
		}
	})

	t.Run("verbose output includes the factor breakdown", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "FACTOR BREAKDOWN") {
			t.Error("expected verbose output to contain the factor breakdown")
		}
	})

	t.Run("batch output includes the summary tally", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		low := model.NewAnalysisResult("Tr0ub4dor&3xyz!Q")
		low.Label = model.LabelLow

		if _, err := w.WriteBatch([]*model.AnalysisResult{createTestResult(), low}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "BATCH SUMMARY") {
			t.Error("expected batch output to contain the summary")
		}
		if !strings.Contains(output, "TOTAL:  2 passwords analyzed") {
			t.Error("expected batch output to contain the total")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid compact JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if decoded["password"] != "MyP@ssw0rd" {
			t.Errorf("password = %v, expected MyP@ssw0rd", decoded["password"])
		}
		if decoded["label"] != "high" {
			t.Errorf("label = %v, expected high", decoded["label"])
		}
		if decoded["breached_offline"] != true {
			t.Error("expected breached_offline to be true")
		}
	})

	t.Run("pretty print adds indentation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected pretty-printed output to contain indentation")
		}
	})

	t.Run("redaction replaces the password", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithRedaction())
		result := createTestResult()

		if _, err := w.Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "MyP@ssw0rd") {
			t.Error("expected the password to be redacted in JSON output")
		}
		// The caller's result must stay untouched.
		if result.Password != "MyP@ssw0rd" {
			t.Error("redaction mutated the caller's result")
		}
	})

	t.Run("batch writes a JSON array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		results := []*model.AnalysisResult{createTestResult(), createTestResult()}
		if _, err := w.WriteBatch(results); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("batch output is not a JSON array: %v", err)
		}
		if len(decoded) != 2 {
			t.Errorf("decoded %d results, expected 2", len(decoded))
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and tables", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Password Risk Report") {
			t.Error("expected output to contain the H1 header")
		}
		if !strings.Contains(output, "Risk Score") {
			t.Error("expected output to contain the property table")
		}
		if !strings.Contains(output, "### Suggested Replacements") {
			t.Error("expected output to contain the suggestions section")
		}
	})

	t.Run("breached result carries a caution alert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!CAUTION]") {
			t.Error("expected a caution alert for a breached password")
		}
	})

	t.Run("batch output includes the distribution chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		low := model.NewAnalysisResult("Tr0ub4dor&3xyz!Q")
		low.Label = model.LabelLow

		if _, err := w.WriteBatch([]*model.AnalysisResult{createTestResult(), low}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "```mermaid") {
			t.Error("expected batch output to contain the mermaid chart")
		}
		if !strings.Contains(output, "## Summary") {
			t.Error("expected batch output to contain the summary section")
		}
	})

	t.Run("redaction hides the password", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf, WithMarkdownRedaction())

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "MyP@ssw0rd") {
			t.Error("expected the password to be redacted")
		}
	})
}

// TestMultiWriter tests the fan-out writer.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var simple, jsonBuf bytes.Buffer
	w := NewMultiWriter(NewSimpleWriter(&simple), NewJSONWriter(&jsonBuf))

	if _, err := w.Write(createTestResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if simple.Len() == 0 {
		t.Error("simple writer received no output")
	}
	if jsonBuf.Len() == 0 {
		t.Error("JSON writer received no output")
	}
}
