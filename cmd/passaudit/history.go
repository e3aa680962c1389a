package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nao1215/passaudit/internal/breach"
	"github.com/nao1215/passaudit/internal/config"
	"github.com/nao1215/passaudit/internal/database"
	"github.com/spf13/cobra"
)

// Risk trend directions between two analyses of the same password.
const (
	trendWorsened  = "worsened"
	trendImproved  = "improved"
	trendUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command lists redacted analysis records stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [password]",
		Short: "List past analysis records",
		Long: `History displays analysis records stored in the local database.

Records are redacted: only the 5-character SHA-1 prefix of each analyzed
password is stored, together with the risk score, label, breach outcome,
and reasons. Plaintext passwords and suggestions are never persisted.

When a password is given, only the records sharing its hash prefix are
shown, and if at least two exist the risk trend between the latest two
analyses is reported.

Examples:
  # List the 20 most recent analysis records
  passaudit history

  # List all records
  passaudit history --limit 0

  # Show the history and risk trend for a specific password
  passaudit history 'MyP@ssw0rd'

  # Show how many records carry each risk label
  passaudit history --summary

  # Output records in JSON format
  passaudit history --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 20,
		"Maximum number of records to list (0 for all)")
	cmd.Flags().BoolP("summary", "S", false,
		"Show the number of records per risk label instead of listing them")
	cmd.Flags().BoolP("json", "j", false,
		"Output records in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	summary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// The database lives in the XDG data directory; refuse to create it here
	// because a missing database simply means nothing was analyzed yet.
	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no analysis history found (run 'passaudit analyze' first): %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if summary {
		return showLabelSummary(ctx, db, jsonOutput)
	}

	if len(args) > 0 {
		return showPasswordHistory(ctx, db, args[0], jsonOutput)
	}

	return listRecords(ctx, db, limit, jsonOutput)
}

// listRecords lists the most recent analysis records.
func listRecords(ctx context.Context, db *database.HistoryDB, limit int, jsonOutput bool) error {
	records, err := db.ListHistory(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if jsonOutput {
		return outputRecordsJSON(records)
	}

	if len(records) == 0 {
		fmt.Println("No analysis records found.")
		fmt.Println("\nUse 'passaudit analyze' to analyze a password.")
		return nil
	}

	fmt.Printf("Analysis history (%d records):\n\n", len(records))
	printRecordTable(records)
	fmt.Println("\nUse 'passaudit history <password>' to see the trend for one password.")

	return nil
}

// showPasswordHistory lists the records matching one password's hash prefix
// and reports the risk trend between the two most recent analyses.
func showPasswordHistory(ctx context.Context, db *database.HistoryDB, password string, jsonOutput bool) error {
	ref := breach.HashPrefix(password)

	records, err := db.HistoryByRef(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if jsonOutput {
		return outputRecordsJSON(records)
	}

	if len(records) == 0 {
		fmt.Printf("No analysis records found for hash prefix %s\n", ref)
		fmt.Println("\nUse 'passaudit analyze' to analyze this password.")
		return nil
	}

	fmt.Printf("Analysis history for hash prefix %s (%d records):\n\n", ref, len(records))
	printRecordTable(records)

	// Records are ordered newest first
	if len(records) >= 2 {
		current, previous := records[0], records[1]
		fmt.Printf("\nRisk trend: %s\n", formatTrend(riskTrend(previous, current)))
		fmt.Printf("  Previous: %.2f (%s) at %s\n",
			previous.RiskScore, previous.Label, previous.AnalyzedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("  Current:  %.2f (%s) at %s\n",
			current.RiskScore, current.Label, current.AnalyzedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}

// showLabelSummary prints the number of records per risk label.
func showLabelSummary(ctx context.Context, db *database.HistoryDB, jsonOutput bool) error {
	counts, err := db.CountByLabel(ctx)
	if err != nil {
		return fmt.Errorf("failed to summarize history: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(counts)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	if total == 0 {
		fmt.Println("No analysis records found.")
		return nil
	}

	fmt.Printf("Analysis records by risk label (%d total):\n\n", total)
	for _, label := range []string{"high", "medium", "low"} {
		fmt.Printf("  %-8s %d\n", label, counts[label])
	}

	return nil
}

// printRecordTable prints analysis records in a fixed-width table.
func printRecordTable(records []database.Record) {
	fmt.Printf("  %-6s  %-20s  %-6s  %-6s  %-8s  %s\n",
		"ID", "Date", "Ref", "Score", "Label", "Breached")
	fmt.Println("  " + strings.Repeat("-", 64))

	for _, r := range records {
		fmt.Printf("  %-6d  %-20s  %-6s  %-6.2f  %-8s  %s\n",
			r.ID,
			r.AnalyzedAt.Format("2006-01-02 15:04:05"),
			r.PasswordRef,
			r.RiskScore,
			r.Label,
			breachMark(r),
		)
	}
}

// breachMark summarizes a record's breach outcome for the table.
func breachMark(r database.Record) string {
	switch {
	case r.OfflineHit && r.OnlineHit:
		return "offline+online"
	case r.OfflineHit:
		return "offline"
	case r.OnlineHit:
		return "online"
	case !r.OnlineChecked:
		return "no (offline only)"
	default:
		return "no"
	}
}

// riskTrend compares two records of the same password.
func riskTrend(previous, current database.Record) string {
	switch {
	case current.RiskScore > previous.RiskScore:
		return trendWorsened
	case current.RiskScore < previous.RiskScore:
		return trendImproved
	default:
		return trendUnchanged
	}
}

// formatTrend formats the risk trend direction for display.
func formatTrend(direction string) string {
	switch direction {
	case trendImproved:
		return "IMPROVED (risk decreased)"
	case trendWorsened:
		return "WORSENED (risk increased)"
	default:
		return "UNCHANGED"
	}
}

// outputRecordsJSON prints records as indented JSON.
func outputRecordsJSON(records []database.Record) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
