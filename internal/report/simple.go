package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/passaudit/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables the per-factor breakdown in the output.
	verbose bool

	// redact hides the analyzed password in the output header.
	redact bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with the full factor breakdown.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithSimpleRedaction hides the analyzed password in the report header.
func WithSimpleRedaction() SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.redact = true
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs one analysis result in human-readable format.
func (w *SimpleWriter) Write(result *model.AnalysisResult) (int, error) {
	var sb strings.Builder
	w.writeResult(&sb, result)
	return w.output.Write([]byte(sb.String()))
}

// WriteBatch outputs multiple analysis results separated by rules, followed
// by a verdict summary.
func (w *SimpleWriter) WriteBatch(results []*model.AnalysisResult) (int, error) {
	var sb strings.Builder
	for _, result := range results {
		w.writeResult(&sb, result)
	}
	w.writeBatchSummary(&sb, results)
	return w.output.Write([]byte(sb.String()))
}

// writeResult writes one full result: header, verdict, reasons, suggestions,
// and the factor breakdown when verbose.
func (w *SimpleWriter) writeResult(sb *strings.Builder, result *model.AnalysisResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      PASSWORD RISK REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	password := result.Password
	if w.redact {
		password = model.RedactedPassword
	}
	sb.WriteString(fmt.Sprintf("Password:    %s\n", password))
	sb.WriteString(fmt.Sprintf("Risk Score:  %.2f\n", result.RiskScore))
	sb.WriteString(fmt.Sprintf("Risk Label:  [%s] %s\n", w.labelIndicator(result.Label), strings.ToUpper(result.Label.String())))
	sb.WriteString(fmt.Sprintf("Analyzed At: %s\n", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Breached:    %s\n", w.breachStatus(result)))
	sb.WriteString("\n")

	w.writeReasons(sb, result)
	w.writeSuggestions(sb, result)

	if w.verbose {
		w.writeFactors(sb, result)
	}
}

// breachStatus summarizes the breach verdict as one line.
func (w *SimpleWriter) breachStatus(result *model.AnalysisResult) string {
	switch {
	case result.OfflineHit && result.OnlineHit:
		count := uint64(0)
		if result.OnlineCount != nil {
			count = *result.OnlineCount
		}
		return fmt.Sprintf("YES (offline corpus and online, %d occurrences)", count)
	case result.OnlineHit:
		count := uint64(0)
		if result.OnlineCount != nil {
			count = *result.OnlineCount
		}
		return fmt.Sprintf("YES (online, %d occurrences)", count)
	case result.OfflineHit:
		return "YES (offline corpus)"
	case result.OnlineChecked:
		return "No"
	default:
		return "No (offline corpus only)"
	}
}

// writeReasons writes the ordered reasons section.
func (w *SimpleWriter) writeReasons(sb *strings.Builder, result *model.AnalysisResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("REASONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(result.Reasons) == 0 {
		sb.WriteString("  No weaknesses detected\n")
	} else {
		for _, reason := range result.Reasons {
			sb.WriteString(fmt.Sprintf("  [!] %s\n", reason))
		}
	}
	sb.WriteString("\n")
}

// writeSuggestions writes the replacement candidates section.
func (w *SimpleWriter) writeSuggestions(sb *strings.Builder, result *model.AnalysisResult) {
	if len(result.Suggestions) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUGGESTED REPLACEMENTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, suggestion := range result.Suggestions {
		sb.WriteString(fmt.Sprintf("  [+] %s\n", suggestion))
	}
	sb.WriteString("\n")
}

// writeFactors writes the per-factor breakdown, triggered factors first in
// display only; the underlying order is preserved within each group.
func (w *SimpleWriter) writeFactors(sb *strings.Builder, result *model.AnalysisResult) {
	if len(result.Factors) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FACTOR BREAKDOWN\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, factor := range result.Factors {
		mark := " "
		if factor.Triggered {
			mark = "x"
		}
		direction := "+"
		if factor.Positive {
			direction = "-"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %-16s weight %s%.2f\n", mark, factor.Name, direction, factor.Weight))
	}
	sb.WriteString("\n")
}

// writeBatchSummary writes the verdict tally for a batch report.
func (w *SimpleWriter) writeBatchSummary(sb *strings.Builder, results []*model.AnalysisResult) {
	var low, medium, high int
	for _, result := range results {
		switch result.Label {
		case model.LabelLow:
			low++
		case model.LabelMedium:
			medium++
		case model.LabelHigh:
			high++
		}
	}

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("BATCH SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  HIGH:   %d\n", high))
	sb.WriteString(fmt.Sprintf("  MEDIUM: %d\n", medium))
	sb.WriteString(fmt.Sprintf("  LOW:    %d\n", low))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:  %d passwords analyzed\n", len(results)))
	sb.WriteString("\n")
}

// labelIndicator returns a visual indicator for the risk label.
func (w *SimpleWriter) labelIndicator(label model.RiskLabel) string {
	switch label {
	case model.LabelHigh:
		return "!!!"
	case model.LabelMedium:
		return "!!"
	case model.LabelLow:
		return "-"
	default:
		return "?"
	}
}
