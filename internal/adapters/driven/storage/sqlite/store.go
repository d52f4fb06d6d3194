package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.AnalysisStore = (*Store)(nil)

// Store is a SQLite-backed driven.AnalysisStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) history.db in dataDir.
// If dataDir is empty, defaults to ~/.atsfit/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".atsfit", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs every NNN_name.up.sql newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

const analysisColumns = `id, filename, resume_text, job_description, initial_score,
	rewritten_resume, new_score, suggestions, narrative, match_percent,
	match_source, warnings, created_at`

// Save stores or replaces an analysis.
func (s *Store) Save(ctx context.Context, a *domain.Analysis) error {
	warnings := a.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("marshalling warnings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename = excluded.filename,
			resume_text = excluded.resume_text,
			job_description = excluded.job_description,
			initial_score = excluded.initial_score,
			rewritten_resume = excluded.rewritten_resume,
			new_score = excluded.new_score,
			suggestions = excluded.suggestions,
			narrative = excluded.narrative,
			match_percent = excluded.match_percent,
			match_source = excluded.match_source,
			warnings = excluded.warnings,
			created_at = excluded.created_at
	`, a.ID, a.Filename, a.ResumeText, a.JobDescription, a.InitialScore.Float(),
		a.RewrittenResume, a.NewScore.Float(), a.Suggestions, a.Narrative, a.MatchPercent,
		string(a.MatchSource), string(warningsJSON), a.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}
	return nil
}

// Get retrieves an analysis by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Analysis, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = ?`, id)

	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List returns all analyses, newest first.
func (s *Store) List(ctx context.Context) ([]domain.Analysis, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+analysisColumns+` FROM analyses ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	analyses := []domain.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}
	return analyses, nil
}

// Delete removes an analysis.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (*domain.Analysis, error) {
	var (
		a                      domain.Analysis
		initialScore, newScore float64
		source, warningsJSON   string
		createdAt              int64
	)
	err := row.Scan(&a.ID, &a.Filename, &a.ResumeText, &a.JobDescription, &initialScore,
		&a.RewrittenResume, &newScore, &a.Suggestions, &a.Narrative, &a.MatchPercent,
		&source, &warningsJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning analysis: %w", err)
	}

	if err := json.Unmarshal([]byte(warningsJSON), &a.Warnings); err != nil {
		return nil, fmt.Errorf("unmarshalling warnings: %w", err)
	}
	if len(a.Warnings) == 0 {
		a.Warnings = nil
	}

	a.InitialScore = domain.NewMatchScore(initialScore)
	a.NewScore = domain.NewMatchScore(newScore)
	a.MatchSource = domain.ScoreSource(source)
	a.CreatedAt = time.Unix(0, createdAt).UTC()
	return &a, nil
}
