package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/passaudit/internal/breach"
	"github.com/nao1215/passaudit/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// sampleResult builds a breached high-risk result for "MyP@ssw0rd".
func sampleResult() *model.AnalysisResult {
	count := uint64(42)
	result := model.NewAnalysisResult("MyP@ssw0rd")
	result.RiskScore = 0.9
	result.Label = model.LabelHigh
	result.OfflineHit = true
	result.OnlineHit = true
	result.OnlineChecked = true
	result.OnlineCount = &count
	result.Reasons = []string{
		"Shorter than 12 characters",
		"Matches a password found in known breach corpora",
	}
	result.Suggestions = []string{"Meadow!42xKpQ"}
	result.AnalyzedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return result
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		// Check that database file exists
		dbPath := filepath.Join(dbDir, "passaudit.db")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("expected database file to be created")
		}
	})

	t.Run("refuses missing database when CreateIfNotExists is false", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false}
		if _, err := Open(filepath.Join(t.TempDir(), "missing"), opts); err == nil {
			t.Error("expected an error for a missing database")
		}
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()

		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if _, err := db.SaveResult(context.Background(), sampleResult()); err != nil {
			t.Fatalf("failed to save record: %v", err)
		}
		_ = db.Close()

		db, err = Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		records, err := db.ListHistory(context.Background(), 0)
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("got %d records after reopen, expected 1", len(records))
		}
	})
}

// TestSaveResult tests that saved records round-trip with the password
// reduced to its hash prefix.
func TestSaveResult(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	id, err := db.SaveResult(ctx, sampleResult())
	if err != nil {
		t.Fatalf("SaveResult() returned unexpected error: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveResult() returned id %d, expected positive", id)
	}

	records, err := db.ListHistory(ctx, 0)
	if err != nil {
		t.Fatalf("ListHistory() returned unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, expected 1", len(records))
	}

	record := records[0]
	if record.PasswordRef != breach.HashPrefix("MyP@ssw0rd") {
		t.Errorf("PasswordRef = %q, expected the 5-character hash prefix", record.PasswordRef)
	}
	if record.RiskScore != 0.9 {
		t.Errorf("RiskScore = %v, expected 0.9", record.RiskScore)
	}
	if record.Label != model.LabelHigh {
		t.Errorf("Label = %v, expected %v", record.Label, model.LabelHigh)
	}
	if !record.OfflineHit || !record.OnlineHit || !record.OnlineChecked {
		t.Error("breach flags did not round-trip")
	}
	if record.OnlineCount == nil || *record.OnlineCount != 42 {
		t.Errorf("OnlineCount = %v, expected 42", record.OnlineCount)
	}
	if len(record.Reasons) != 2 {
		t.Errorf("got %d reasons, expected 2", len(record.Reasons))
	}
	if record.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt did not round-trip")
	}
}

// TestNoPlaintextStored tests the privacy invariant: neither the password
// nor any suggestion ever appears in the database file.
func TestNoPlaintextStored(t *testing.T) {
	t.Parallel()

	dbDir := t.TempDir()
	db, err := Open(dbDir, Options{CreateIfNotExists: true, EnableWAL: false})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if _, err := db.SaveResult(context.Background(), sampleResult()); err != nil {
		t.Fatalf("SaveResult() returned unexpected error: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dbDir, "passaudit.db"))
	if err != nil {
		t.Fatalf("failed to read database file: %v", err)
	}

	content := string(raw)
	if strings.Contains(content, "MyP@ssw0rd") {
		t.Error("database file contains the plaintext password")
	}
	if strings.Contains(content, "Meadow!42xKpQ") {
		t.Error("database file contains a suggestion")
	}
}

// TestListHistoryLimit tests the limit and ordering of ListHistory.
func TestListHistoryLimit(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	for i := range 5 {
		result := sampleResult()
		result.AnalyzedAt = time.Date(2026, 8, 1+i, 12, 0, 0, 0, time.UTC)
		if _, err := db.SaveResult(ctx, result); err != nil {
			t.Fatalf("SaveResult() returned unexpected error: %v", err)
		}
	}

	records, err := db.ListHistory(ctx, 3)
	if err != nil {
		t.Fatalf("ListHistory() returned unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, expected 3", len(records))
	}

	// Newest first
	for i := 1; i < len(records); i++ {
		if records[i].AnalyzedAt.After(records[i-1].AnalyzedAt) {
			t.Error("records are not ordered newest first")
		}
	}
}

// TestHistoryByRef tests filtering records by hash prefix.
func TestHistoryByRef(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.SaveResult(ctx, sampleResult()); err != nil {
		t.Fatalf("SaveResult() returned unexpected error: %v", err)
	}

	other := model.NewAnalysisResult("completely-different")
	other.Label = model.LabelLow
	if _, err := db.SaveResult(ctx, other); err != nil {
		t.Fatalf("SaveResult() returned unexpected error: %v", err)
	}

	records, err := db.HistoryByRef(ctx, breach.HashPrefix("MyP@ssw0rd"))
	if err != nil {
		t.Fatalf("HistoryByRef() returned unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records for the prefix, expected 1", len(records))
	}
	if records[0].Label != model.LabelHigh {
		t.Errorf("Label = %v, expected %v", records[0].Label, model.LabelHigh)
	}
}

// TestCountByLabel tests the per-label tally.
func TestCountByLabel(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.SaveResult(ctx, sampleResult()); err != nil {
		t.Fatalf("SaveResult() returned unexpected error: %v", err)
	}
	low := model.NewAnalysisResult("Tr0ub4dor&3xyz!Q")
	low.Label = model.LabelLow
	if _, err := db.SaveResult(ctx, low); err != nil {
		t.Fatalf("SaveResult() returned unexpected error: %v", err)
	}

	counts, err := db.CountByLabel(ctx)
	if err != nil {
		t.Fatalf("CountByLabel() returned unexpected error: %v", err)
	}
	if counts["high"] != 1 || counts["low"] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
}

// TestParseTimestamp tests the multi-format timestamp parser.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		wantZero bool
	}{
		{"2026-08-01 12:00:00", false},
		{"2026-08-01T12:00:00Z", false},
		{"2026-08-01T12:00:00", false},
		{"not a timestamp", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if got.IsZero() != tt.wantZero {
				t.Errorf("parseTimestamp(%q).IsZero() = %v, want %v", tt.input, got.IsZero(), tt.wantZero)
			}
		})
	}
}
