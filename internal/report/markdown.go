package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/passaudit/internal/model"
)

// MarkdownWriter outputs analysis reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// redact hides the analyzed password in the report.
	redact bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownRedaction hides the analyzed password in the report.
func WithMarkdownRedaction() MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.redact = true
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs one analysis result in Markdown format.
func (w *MarkdownWriter) Write(result *model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Password Risk Report")
	md.PlainText("")

	w.writeResult(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs multiple analysis results as one Markdown document with
// a verdict distribution chart.
func (w *MarkdownWriter) WriteBatch(results []*model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Password Risk Report")
	md.PlainText("")

	w.writeBatchSummary(md, results)

	for i, result := range results {
		md.H2(fmt.Sprintf("Password %d", i+1))
		md.PlainText("")
		w.writeResult(md, result)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeResult writes the sections for one analysis result.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, result *model.AnalysisResult) {
	password := result.Password
	if w.redact {
		password = model.RedactedPassword
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Password", "`" + password + "`"},
			{"Risk Score", fmt.Sprintf("%.2f", result.RiskScore)},
			{"Risk Label", w.labelBadge(result.Label)},
			{"Breached", w.breachText(result)},
			{"Analyzed At", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	w.writeAlert(md, result)
	w.writeReasons(md, result)
	w.writeSuggestions(md, result)
	w.writeFactors(md, result)
}

// labelBadge returns the decorated label text.
func (w *MarkdownWriter) labelBadge(label model.RiskLabel) string {
	switch label {
	case model.LabelHigh:
		return "🔴 High"
	case model.LabelMedium:
		return "🟡 Medium"
	case model.LabelLow:
		return "🟢 Low"
	default:
		return label.String()
	}
}

// breachText summarizes the breach verdict.
func (w *MarkdownWriter) breachText(result *model.AnalysisResult) string {
	switch {
	case result.OnlineHit:
		count := uint64(0)
		if result.OnlineCount != nil {
			count = *result.OnlineCount
		}
		return fmt.Sprintf("Yes (online, %d occurrences)", count)
	case result.OfflineHit:
		return "Yes (offline corpus)"
	case result.OnlineChecked:
		return "No"
	default:
		return "No (offline corpus only)"
	}
}

// writeAlert writes an alert appropriate to the verdict.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.AnalysisResult) {
	switch {
	case result.Breached():
		md.Caution("This password appears in known breach corpora. Replace it immediately and anywhere it is reused.")
	case result.Label == model.LabelHigh:
		md.Warning("This password is high risk and should be replaced.")
	case result.Label == model.LabelMedium:
		md.Important("This password has weaknesses worth addressing.")
	default:
		md.Tip("No significant weaknesses detected.")
	}
	md.PlainText("")
}

// writeReasons writes the ordered reasons list.
func (w *MarkdownWriter) writeReasons(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H3("Reasons")
	md.PlainText("")

	if len(result.Reasons) == 0 {
		md.PlainText("No weaknesses detected.")
		md.PlainText("")
		return
	}

	md.BulletList(result.Reasons...)
	md.PlainText("")
}

// writeSuggestions writes the replacement candidates.
func (w *MarkdownWriter) writeSuggestions(md *markdown.Markdown, result *model.AnalysisResult) {
	if len(result.Suggestions) == 0 {
		return
	}

	md.H3("Suggested Replacements")
	md.PlainText("")

	items := make([]string, len(result.Suggestions))
	for i, suggestion := range result.Suggestions {
		items[i] = "`" + suggestion + "`"
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeFactors writes the per-factor evaluation table.
func (w *MarkdownWriter) writeFactors(md *markdown.Markdown, result *model.AnalysisResult) {
	if len(result.Factors) == 0 {
		return
	}

	md.H3("Factor Breakdown")
	md.PlainText("")

	rows := make([][]string, len(result.Factors))
	for i, factor := range result.Factors {
		triggered := "No"
		if factor.Triggered {
			triggered = "**Yes**"
		}
		direction := "penalty"
		if factor.Positive {
			direction = "credit"
		}
		rows[i] = []string{
			factor.Name,
			fmt.Sprintf("%.2f (%s)", factor.Weight, direction),
			triggered,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Factor", "Weight", "Triggered"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeBatchSummary writes the verdict tally and a mermaid pie chart of the
// label distribution.
func (w *MarkdownWriter) writeBatchSummary(md *markdown.Markdown, results []*model.AnalysisResult) {
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

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Risk Label", "Count"},
		Rows: [][]string{
			{"🔴 High", strconv.Itoa(high)},
			{"🟡 Medium", strconv.Itoa(medium)},
			{"🟢 Low", strconv.Itoa(low)},
			{"**Total**", "**" + strconv.Itoa(len(results)) + "**"},
		},
	})
	md.PlainText("")

	if len(results) > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Risk Label Distribution"),
			piechart.WithShowData(true),
		)
		if high > 0 {
			chart.LabelAndIntValue("High", uint64(high))
		}
		if medium > 0 {
			chart.LabelAndIntValue("Medium", uint64(medium))
		}
		if low > 0 {
			chart.LabelAndIntValue("Low", uint64(low))
		}

		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	if high > 0 {
		md.Cautionf("%d password(s) were rated high risk and should be replaced.", high)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [passaudit](https://github.com/nao1215/passaudit)*")
}
