package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"discauthor/internal/config"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const buildColumns = "id, project, project_path, operation, status, output_path, digest, titlesets, menus, titles, faults, error_message, started_at, finished_at"

// Store persists build records.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database configured in cfg.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.HistoryPath())
}

// OpenPath opens the database at dbPath and applies migrations.
func OpenPath(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts b. A missing ID is generated and missing timestamps default
// to now. The stored record is returned.
func (s *Store) Record(ctx context.Context, b Build) (*Build, error) {
	if strings.TrimSpace(b.ProjectPath) == "" {
		return nil, errors.New("record build: project path required")
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if b.FinishedAt.IsZero() {
		b.FinishedAt = now
	}
	if b.StartedAt.IsZero() {
		b.StartedAt = b.FinishedAt
	}
	if b.Status == "" {
		b.Status = StatusSucceeded
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (`+buildColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.Project,
		b.ProjectPath,
		string(b.Operation),
		string(b.Status),
		nullableString(b.OutputPath),
		nullableString(b.Digest),
		b.Titlesets,
		b.Menus,
		b.Titles,
		b.Faults,
		nullableString(b.ErrorMessage),
		b.StartedAt.UTC().Format(timeLayout),
		b.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert build: %w", err)
	}
	return s.Get(ctx, b.ID)
}

// Get fetches a build by identifier. It returns nil when none exists.
func (s *Store) Get(ctx context.Context, id string) (*Build, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+buildColumns+` FROM builds WHERE id = ?`, id)
	build, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get build: %w", err)
	}
	return build, nil
}

// List returns up to limit builds, newest first. A limit of 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Build, error) {
	query := `SELECT ` + buildColumns + ` FROM builds ORDER BY finished_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		build, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		builds = append(builds, *build)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return builds, nil
}

// LastSuccessful returns the most recent successful build of the project at
// projectPath, or nil when there is none.
func (s *Store) LastSuccessful(ctx context.Context, projectPath string) (*Build, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+buildColumns+` FROM builds WHERE project_path = ? AND status = ? AND digest IS NOT NULL
		 ORDER BY finished_at DESC, rowid DESC LIMIT 1`,
		projectPath, string(StatusSucceeded))
	build, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last successful build: %w", err)
	}
	return build, nil
}

// Prune deletes builds finished before cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM builds WHERE finished_at < ?`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune builds: %w", err)
	}
	return res.RowsAffected()
}

func scanBuild(scanner interface{ Scan(dest ...any) error }) (*Build, error) {
	var (
		b           Build
		operation   string
		status      string
		outputPath  sql.NullString
		digest      sql.NullString
		errorMsg    sql.NullString
		startedRaw  string
		finishedRaw string
	)
	if err := scanner.Scan(
		&b.ID,
		&b.Project,
		&b.ProjectPath,
		&operation,
		&status,
		&outputPath,
		&digest,
		&b.Titlesets,
		&b.Menus,
		&b.Titles,
		&b.Faults,
		&errorMsg,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}
	b.Operation = Operation(operation)
	b.Status = Status(status)
	b.OutputPath = outputPath.String
	b.Digest = digest.String
	b.ErrorMessage = errorMsg.String
	b.StartedAt = parseTime(startedRaw)
	b.FinishedAt = parseTime(finishedRaw)
	return &b, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
