package grid

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/pkg/export"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

// output writes assembled tables. It is only used from the export sink, one call at a time.
type output struct {
	dir    string
	format export.Format
	db     *export.SQLiteWriter
	closer io.Closer
}

func newOutput(ctx context.Context, cfg Config) (*output, error) {
	out := &output{dir: cfg.OutputDir, format: cfg.Format}
	if out.dir == "" {
		return out, nil
	}

	if out.format == "" {
		out.format = export.CSV
	}

	format, err := export.ParseFormat(string(out.format))
	if err != nil {
		return nil, err
	}
	out.format = format

	err = os.MkdirAll(out.dir, 0o755)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create %s", out.dir)
	}

	if out.format == export.SQLite {
		out.db, err = export.OpenSQLite(ctx, filepath.Join(out.dir, SQLiteFile))
		if err != nil {
			return nil, err
		}
		out.closer = out.db
	}

	return out, nil
}

func (o *output) runID() string {
	if o.db == nil {
		return ""
	}

	return o.db.RunID()
}

func (o *output) write(ctx context.Context, source string, t *model.Table) (string, error) {
	if o.dir == "" {
		return "", nil
	}

	if o.db != nil {
		return o.db.WriteTrack(ctx, source, t)
	}

	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	path := filepath.Join(o.dir, base+o.format.Ext())

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "unable to create %s", path)
	}

	err = export.Write(f, o.format, t)
	if err != nil {
		_ = f.Close()

		return "", errors.Wrapf(err, "unable to write %s", path)
	}

	return path, errors.Wrapf(f.Close(), "unable to close %s", path)
}

func (o *output) close() error {
	if o.closer == nil {
		return nil
	}

	return errors.Wrap(o.closer.Close(), "unable to close track database")
}
