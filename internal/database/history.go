package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/passaudit/internal/breach"
	"github.com/nao1215/passaudit/internal/model"
)

// HistoryDB provides SQLite-based storage for analysis history.
// It manages connection pooling and provides methods for saving and
// listing redacted analysis records.
//
// Design decision: We use a single database file rather than one per
// session. This keeps the full audit history queryable in one place and
// simplifies backup/restore operations.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "passaudit.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		// Check if database file exists
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Analysis records store one redacted row per analyzed password.
	-- password_ref is the 5-character SHA-1 prefix, never the password.
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		password_ref TEXT NOT NULL,
		risk_score REAL NOT NULL,
		label TEXT NOT NULL,
		breached_offline INTEGER NOT NULL DEFAULT 0,
		breached_online INTEGER NOT NULL DEFAULT 0,
		online_checked INTEGER NOT NULL DEFAULT 0,
		hibp_count INTEGER,
		reasons TEXT NOT NULL,
		analyzed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_ref ON analyses(password_ref);
	CREATE INDEX IF NOT EXISTS idx_analyses_label ON analyses(label);
	CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses(analyzed_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Record is one stored analysis history row. It carries no plaintext: the
// password is represented only by its 5-character SHA-1 prefix.
type Record struct {
	// ID is the unique identifier of the record in the database.
	ID int64 `json:"id"`

	// PasswordRef is the 5-character SHA-1 prefix of the analyzed password.
	PasswordRef string `json:"password_ref"`

	// RiskScore is the clamped heuristic score at analysis time.
	RiskScore float64 `json:"risk_score"`

	// Label is the discrete verdict.
	Label model.RiskLabel `json:"label"`

	// OfflineHit, OnlineHit, and OnlineChecked mirror the breach outcome.
	OfflineHit    bool `json:"breached_offline"`
	OnlineHit     bool `json:"breached_online"`
	OnlineChecked bool `json:"online_checked"`

	// OnlineCount is the occurrence count from the breach service, when an
	// online hit occurred.
	OnlineCount *uint64 `json:"hibp_count,omitempty"`

	// Reasons is the ordered reasons list from the analysis.
	Reasons []string `json:"reasons"`

	// AnalyzedAt is when the analysis completed.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// SaveResult stores a redacted record for one analysis result. The plaintext
// password is reduced to its 5-character SHA-1 prefix before the row is
// written; nothing password-derived beyond that prefix reaches the database.
// Suggestions are candidate future passwords and are never persisted.
func (hdb *HistoryDB) SaveResult(ctx context.Context, result *model.AnalysisResult) (int64, error) {
	reasonsJSON, err := json.Marshal(result.Reasons)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize reasons: %w", err)
	}

	var count sql.NullInt64
	if result.OnlineCount != nil {
		count = sql.NullInt64{Int64: int64(*result.OnlineCount), Valid: true} //nolint:gosec // Observed counts fit in int64
	}

	query := `
	INSERT INTO analyses (password_ref, risk_score, label, breached_offline, breached_online, online_checked, hibp_count, reasons, analyzed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := hdb.db.ExecContext(ctx, query,
		breach.HashPrefix(result.Password),
		result.RiskScore,
		result.Label.String(),
		result.OfflineHit,
		result.OnlineHit,
		result.OnlineChecked,
		count,
		string(reasonsJSON),
		result.AnalyzedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save analysis record: %w", err)
	}

	return res.LastInsertId()
}

// ListHistory returns the most recent analysis records, newest first.
// A non-positive limit returns all records.
func (hdb *HistoryDB) ListHistory(ctx context.Context, limit int) ([]Record, error) {
	query := `
	SELECT id, password_ref, risk_score, label, breached_offline, breached_online, online_checked, hibp_count, reasons, analyzed_at
	FROM analyses
	ORDER BY analyzed_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// HistoryByRef returns all records sharing a password's 5-character SHA-1
// prefix, newest first. Prefix collisions are possible and expected; the
// caller sees every analysis that could refer to the same password.
func (hdb *HistoryDB) HistoryByRef(ctx context.Context, ref string) ([]Record, error) {
	query := `
	SELECT id, password_ref, risk_score, label, breached_offline, breached_online, online_checked, hibp_count, reasons, analyzed_at
	FROM analyses
	WHERE password_ref = ?
	ORDER BY analyzed_at DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// CountByLabel returns the number of stored records per risk label.
func (hdb *HistoryDB) CountByLabel(ctx context.Context) (map[string]int, error) {
	query := `SELECT label, COUNT(*) FROM analyses GROUP BY label`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count history: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[label] = count
	}

	return counts, rows.Err()
}

// scanRecords reads history rows into Records.
func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var record Record
		var label string
		var count sql.NullInt64
		var reasonsJSON string
		var timestamp string

		err := rows.Scan(
			&record.ID,
			&record.PasswordRef,
			&record.RiskScore,
			&label,
			&record.OfflineHit,
			&record.OnlineHit,
			&record.OnlineChecked,
			&count,
			&reasonsJSON,
			&timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}

		record.Label = model.ParseLabel(label)
		if count.Valid {
			v := uint64(count.Int64) //nolint:gosec // Stored counts are non-negative
			record.OnlineCount = &v
		}
		if reasonsJSON != "" {
			if err := json.Unmarshal([]byte(reasonsJSON), &record.Reasons); err != nil {
				return nil, fmt.Errorf("failed to parse reasons: %w", err)
			}
		}
		record.AnalyzedAt = parseTimestamp(timestamp)

		records = append(records, record)
	}

	return records, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
