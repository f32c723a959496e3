package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"

	"tqc/internal/config"
	"tqc/internal/domain"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// MySQLRecorder stores batch summaries in a MySQL table
type MySQLRecorder struct {
	db    *sql.DB
	table string
}

// Open connects to the ledger database, creating the database and the table
// when they do not exist yet.
func Open(ctx context.Context, cfg *config.Config) (*MySQLRecorder, error) {
	if !isValidName(cfg.History.Database) {
		return nil, fmt.Errorf("invalid database name: %q", cfg.History.Database)
	}
	if !isValidName(cfg.History.Table) {
		return nil, fmt.Errorf("invalid table name: %q", cfg.History.Table)
	}

	if err := ensureDatabase(ctx, cfg); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", cfg.HistoryDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	r := &MySQLRecorder{db: db, table: cfg.History.Table}
	if err := r.createTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", r.table, err)
	}
	return r, nil
}

// ensureDatabase connects to the server without selecting a database and creates it if missing
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	dsn, err := mysql.ParseDSN(cfg.HistoryDSN())
	if err != nil {
		return fmt.Errorf("invalid history DSN: %w", err)
	}
	name := dsn.DBName
	dsn.DBName = ""

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	if err := db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if exists {
		return nil
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

func (r *MySQLRecorder) createTable(ctx context.Context) error {
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"id CHAR(36) NOT NULL PRIMARY KEY, "+
		"created_at DATETIME(6) NOT NULL, "+
		"xml_files INT NOT NULL, "+
		"resolved INT NOT NULL, "+
		"unresolved INT NOT NULL, "+
		"file_errors INT NOT NULL, "+
		"uploaded TINYINT(1) NOT NULL, "+
		"report JSON NOT NULL, "+
		"INDEX idx_created_at (created_at))", r.table)
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Record inserts the batch; recording the same batch twice updates the row
func (r *MySQLRecorder) Record(ctx context.Context, report *domain.BatchReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal batch report: %w", err)
	}

	s := report.Summary()
	query := fmt.Sprintf("INSERT INTO `%s` (id, created_at, xml_files, resolved, unresolved, file_errors, uploaded, report) "+
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?) "+
		"ON DUPLICATE KEY UPDATE resolved = VALUES(resolved), unresolved = VALUES(unresolved), "+
		"file_errors = VALUES(file_errors), uploaded = VALUES(uploaded), report = VALUES(report)", r.table)
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.CreatedAt.UTC(), s.XMLFiles, s.Resolved, s.Unresolved, s.FileErrors, s.Uploaded, payload)
	if err != nil {
		return fmt.Errorf("failed to record batch %s: %w", s.ID, err)
	}
	return nil
}

// Recent returns the newest batches first
func (r *MySQLRecorder) Recent(ctx context.Context, limit int) ([]domain.BatchSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf("SELECT id, created_at, xml_files, resolved, unresolved, file_errors, uploaded "+
		"FROM `%s` ORDER BY created_at DESC LIMIT ?", r.table)
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	var out []domain.BatchSummary
	for rows.Next() {
		var s domain.BatchSummary
		var created time.Time
		if err := rows.Scan(&s.ID, &created, &s.XMLFiles, &s.Resolved, &s.Unresolved, &s.FileErrors, &s.Uploaded); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		s.CreatedAt = created
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close closes the database handle
func (r *MySQLRecorder) Close() error {
	return r.db.Close()
}

func isValidName(name string) bool {
	return validName.MatchString(name)
}
