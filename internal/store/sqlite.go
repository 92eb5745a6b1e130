package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	apperrors "mpicli/internal/errors"
	"mpicli/pkg/contracts/domain"
)

const recordColumns = "category, date, avg_uah, avg_usd, avg_euro, index_value"

// SQLiteStore reads and writes price records in a single-file SQLite
// database. Dates are stored as YYYY-MM-DD text, which compares
// chronologically under SQLite's lexicographic ordering.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (or creates) the database at path and runs migrations.
// A nil logger falls back to slog.Default.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.NewStorageError("open database", err).WithContext("path", path)
	}

	// WAL keeps concurrent report readers off the ingestion writer's back.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("set WAL mode", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("migrate schema", err)
	}

	logger.Info("price record store opened", "path", path)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_records (
			category    INTEGER NOT NULL,
			date        TEXT    NOT NULL,
			avg_uah     REAL    NOT NULL DEFAULT 0,
			avg_usd     REAL    NOT NULL DEFAULT 0,
			avg_euro    REAL    NOT NULL DEFAULT 0,
			index_value REAL    NOT NULL DEFAULT 0,
			PRIMARY KEY (category, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_records_date ON price_records(date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// SaveRecords upserts a batch of records in one transaction. The primary
// key keeps the one-record-per-(category, day) invariant: a record for an
// existing (category, day) replaces the stored values.
func (s *SQLiteStore) SaveRecords(ctx context.Context, records []domain.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO price_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(category, date) DO UPDATE SET
			avg_uah = excluded.avg_uah,
			avg_usd = excluded.avg_usd,
			avg_euro = excluded.avg_euro,
			index_value = excluded.index_value`)
	if err != nil {
		return apperrors.NewStorageError("prepare upsert", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if !record.Category.Valid() {
			return apperrors.NewAppValidationError(
				fmt.Sprintf("record has unknown category code %d", int(record.Category)))
		}
		_, err := stmt.ExecContext(ctx,
			int(record.Category),
			domain.Day(record.Date).Format(domain.DateFormat),
			record.AvgUAH, record.AvgUSD, record.AvgEUR, record.IndexValue,
		)
		if err != nil {
			return apperrors.NewStorageError("upsert record", err).
				WithContext("category", record.Category.Name()).
				WithContext("date", record.Date.Format(domain.DateFormat))
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("commit records", err)
	}

	s.logger.Debug("saved price records", "count", len(records))
	return nil
}

// RecordOn returns the record dated exactly day, or nil.
func (s *SQLiteStore) RecordOn(ctx context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM price_records WHERE category = ? AND date = ?`,
		int(cat), domain.Day(day).Format(domain.DateFormat))
	return scanRecord(row)
}

// LastOnOrBefore returns the most recent record dated at or before day, or nil.
func (s *SQLiteStore) LastOnOrBefore(ctx context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM price_records
		 WHERE category = ? AND date <= ? ORDER BY date DESC LIMIT 1`,
		int(cat), domain.Day(day).Format(domain.DateFormat))
	return scanRecord(row)
}

// FirstOnOrAfter returns the earliest record dated at or after day, or nil.
func (s *SQLiteStore) FirstOnOrAfter(ctx context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM price_records
		 WHERE category = ? AND date >= ? ORDER BY date ASC LIMIT 1`,
		int(cat), domain.Day(day).Format(domain.DateFormat))
	return scanRecord(row)
}

// RecordsBetween returns all records dated within [from, to] inclusive,
// ascending by date.
func (s *SQLiteStore) RecordsBetween(ctx context.Context, cat domain.Category, from, to time.Time) ([]domain.PriceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM price_records
		 WHERE category = ? AND date >= ? AND date <= ? ORDER BY date ASC`,
		int(cat),
		domain.Day(from).Format(domain.DateFormat),
		domain.Day(to).Format(domain.DateFormat))
	if err != nil {
		return nil, apperrors.NewStorageError("query record range", err).
			WithContext("category", cat.Name())
	}
	defer rows.Close()

	var records []domain.PriceRecord
	for rows.Next() {
		record, err := scanRecordRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate record range", err)
	}
	return records, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecordRow(row rowScanner) (domain.PriceRecord, error) {
	var (
		record  domain.PriceRecord
		catCode int
		dateStr string
	)
	err := row.Scan(&catCode, &dateStr, &record.AvgUAH, &record.AvgUSD, &record.AvgEUR, &record.IndexValue)
	if err != nil {
		return domain.PriceRecord{}, apperrors.NewStorageError("scan record", err)
	}
	record.Category = domain.Category(catCode)
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return domain.PriceRecord{}, apperrors.NewStorageError("parse stored date", err).
			WithContext("date", dateStr)
	}
	record.Date = date
	return record, nil
}

func scanRecord(row *sql.Row) (*domain.PriceRecord, error) {
	record, err := scanRecordRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
