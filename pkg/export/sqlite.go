package export

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/askiada/go-binarytrack/pkg/track/model"
)

const tracksSchema = `CREATE TABLE IF NOT EXISTS tracks (
	id           TEXT PRIMARY KEY,
	run_id       TEXT NOT NULL,
	source       TEXT NOT NULL,
	table_name   TEXT NOT NULL,
	row_count    INTEGER NOT NULL,
	column_count INTEGER NOT NULL,
	created_at   TEXT NOT NULL
)`

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// SQLiteWriter stores tracks in a SQLite database: one table per track, indexed by the
// tracks table. Every writer has its own run id. NaN values are stored as NULL.
type SQLiteWriter struct {
	db    *sql.DB
	runID string
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}

	// a single connection serialises writes on the file
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, tracksSchema)
	if err != nil {
		_ = db.Close()

		return nil, errors.Wrap(err, "unable to create tracks table")
	}

	return &SQLiteWriter{db: db, runID: uuid.New().String()}, nil
}

// RunID identifies the tracks written by this writer.
func (s *SQLiteWriter) RunID() string {
	return s.runID
}

// DB returns the underlying database.
func (s *SQLiteWriter) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *SQLiteWriter) Close() error {
	return errors.Wrap(s.db.Close(), "unable to close database")
}

// WriteTrack stores t in a new table named after source and returns the table name.
func (s *SQLiteWriter) WriteTrack(ctx context.Context, source string, t *model.Table) (_ string, err error) {
	id := uuid.New()
	name := tableName(source, id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "unable to begin transaction")
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cols := t.Columns()
	defs := make([]string, len(cols))
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c.Name)
		defs[i] = quoted[i] + " " + sqlType(c.Kind)
		marks[i] = "?"
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", quote(name), strings.Join(defs, ", ")))
	if err != nil {
		return "", errors.Wrapf(err, "unable to create table %s", name)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(name), strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return "", errors.Wrap(err, "unable to prepare insert")
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for row := range t.Len() {
		for i, c := range cols {
			args[i] = value(c, row)
		}

		_, err = stmt.ExecContext(ctx, args...)
		if err != nil {
			return "", errors.Wrapf(err, "unable to insert row %d", row)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO tracks (id, run_id, source, table_name, row_count, column_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id.String(), s.runID, source, name, t.Len(), t.NumColumns(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", errors.Wrap(err, "unable to index track")
	}

	err = tx.Commit()
	if err != nil {
		return "", errors.Wrap(err, "unable to commit")
	}

	return name, nil
}

func tableName(source string, id uuid.UUID) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	base = strings.Trim(unsafeName.ReplaceAllString(base, "_"), "_")
	if base == "" {
		base = "track"
	}

	return "track_" + base + "_" + strings.ReplaceAll(id.String(), "-", "")[:8]
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sqlType(k model.Kind) string {
	switch k {
	case model.Int:
		return "INTEGER"
	case model.String:
		return "TEXT"
	default:
		return "REAL"
	}
}

func value(c *model.Column, row int) any {
	switch c.Kind {
	case model.String:
		return c.Text[row]
	case model.Int:
		return int64(c.Values[row])
	default:
		if math.IsNaN(c.Values[row]) {
			return nil
		}

		return c.Values[row]
	}
}
