// Package grid assembles every track file of a directory concurrently.
package grid

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/internal/ctxlog"
	"github.com/askiada/go-binarytrack/pkg/export"
	"github.com/askiada/go-binarytrack/pkg/pipeline"
	"github.com/askiada/go-binarytrack/pkg/pipeline/measure"
	"github.com/askiada/go-binarytrack/pkg/track"
	"github.com/askiada/go-binarytrack/pkg/track/container"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

// DefaultPattern matches the files of a grid directory.
const DefaultPattern = "*.h5"

// SQLiteFile is the database written in the output directory for the sqlite format.
const SQLiteFile = "tracks.sqlite"

// ErrNoOpener is returned when the configuration has no container opener.
var ErrNoOpener = errors.New("no container opener")

// Config describes a grid run.
type Config struct {
	Dir     string
	Pattern string
	// Workers is the number of concurrent assemblies.
	Workers int
	// ContinueOnError records failing files in the summary instead of stopping the run.
	ContinueOnError bool
	Opener          container.Opener
	Options         []track.Option
	// OutputDir receives one export per track. Nothing is written when it is empty.
	OutputDir string
	Format    export.Format
}

// FileResult is the outcome of one file.
type FileResult struct {
	Path    string
	Rows    int
	Columns int
	// Output is the written file, or the SQLite table holding the track.
	Output  string
	Elapsed time.Duration
	Err     error
}

// Summary is the outcome of a grid run. Files are sorted by path.
type Summary struct {
	Files []FileResult
	// RunID identifies the tracks of this run in the SQLite index.
	RunID   string
	Measure measure.Measure
}

// Failed returns the number of files that could not be assembled or exported.
func (s *Summary) Failed() int {
	res := 0
	for _, f := range s.Files {
		if f.Err != nil {
			res++
		}
	}

	return res
}

type assembled struct {
	path    string
	result  *track.Result
	elapsed time.Duration
	err     error
}

// Run assembles every file of cfg.Dir matching cfg.Pattern.
func Run(ctx context.Context, cfg Config) (_ *Summary, err error) {
	if cfg.Opener == nil {
		return nil, ErrNoOpener
	}

	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	paths, err := list(cfg.Dir, cfg.Pattern)
	if err != nil {
		return nil, err
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("grid started", "dir", cfg.Dir, "files", len(paths), "workers", cfg.Workers)

	out, err := newOutput(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		closeErr := out.close()
		if closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	msr := measure.NewDefaultMeasure()
	summary := &Summary{Measure: msr, RunID: out.runID()}

	pipe, err := pipeline.New(measure.PipelineMeasure(msr))
	if err != nil {
		return nil, errors.Wrap(err, "unable to create pipeline")
	}

	files, err := pipeline.AddRootStep(pipe, "list", func(ctx context.Context, rootChan chan<- string) error {
		for _, path := range paths {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- path:
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add list step")
	}

	tracks, err := pipeline.AddStepOneToOne(pipe, "assemble", files, func(ctx context.Context, path string) (*assembled, error) {
		start := time.Now()
		res, err := track.Assemble(ctx, path, cfg.Opener, cfg.Options...)
		if err != nil && !cfg.ContinueOnError {
			return nil, err
		}

		return &assembled{path: path, result: res, elapsed: time.Since(start), err: err}, nil
	}, pipeline.StepConcurrency(cfg.Workers))
	if err != nil {
		return nil, errors.Wrap(err, "unable to add assemble step")
	}

	err = pipeline.AddSink(pipe, "export", tracks, func(ctx context.Context, a *assembled) error {
		fr := FileResult{Path: a.path, Elapsed: a.elapsed, Err: a.err}
		if a.err == nil {
			fr.Rows, fr.Columns = a.result.Table.Len(), a.result.Table.NumColumns()
			fr.Output, fr.Err = out.write(ctx, a.path, a.result.Table)
			if fr.Err != nil && !cfg.ContinueOnError {
				return fr.Err
			}
		}

		if fr.Err != nil {
			logger.Warn("track failed", "path", a.path, "error", fr.Err)
		} else {
			logger.Debug("track done", "path", a.path, "rows", fr.Rows, "elapsed", fr.Elapsed)
		}

		summary.Files = append(summary.Files, fr)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add export sink")
	}

	err = pipe.Run(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to run grid")
	}

	sort.Slice(summary.Files, func(i, j int) bool { return summary.Files[i].Path < summary.Files[j].Path })

	logger.Info("grid done", "files", len(summary.Files), "failed", summary.Failed())

	return summary, nil
}

func list(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(model.ErrNotFound, "%s: %v", dir, err)
	}

	if !info.IsDir() {
		return nil, errors.Wrapf(model.ErrNotFound, "%s is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
	}

	res := paths[:0]
	for _, path := range paths {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			res = append(res, path)
		}
	}
	sort.Strings(res)

	return res, nil
}
