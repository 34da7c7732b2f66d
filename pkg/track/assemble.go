package track

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/internal/ctxlog"
	"github.com/askiada/go-binarytrack/pkg/track/align"
	"github.com/askiada/go-binarytrack/pkg/track/container"
	"github.com/askiada/go-binarytrack/pkg/track/derive"
	"github.com/askiada/go-binarytrack/pkg/track/merge"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

const (
	historyEntry   = "history"
	binaryEntry    = "binary"
	primaryEntry   = "star1"
	secondaryEntry = "star2"
	extraEntry     = "extra_info"
)

// Stage names reported in Result.Timings.
const (
	StageRead     = "read"
	StageAlign    = "align"
	StageMerge    = "merge"
	StageDerive   = "derive"
	StageProfiles = "profiles"
)

// Timing is the duration of one assembly stage.
type Timing struct {
	Stage   string
	Elapsed time.Duration
}

// Result is an assembled track.
type Result struct {
	// Table is the merged table with derived fields appended.
	Table *model.Table
	// Profiles holds the profiles and their legend when HasProfiles is true.
	Profiles    *model.Container
	HasProfiles bool
	// Extra is the extra_info group of the container, if any.
	Extra *model.Container
	// Report lists the outcome of every derived field. It is nil when derivation is disabled.
	Report  *derive.Report
	Timings []Timing
}

// Elapsed returns the total duration of the stages.
func (r *Result) Elapsed() time.Duration {
	var res time.Duration
	for _, t := range r.Timings {
		res += t.Elapsed
	}

	return res
}

// Assemble reads the file at path with open and assembles its track.
func Assemble(ctx context.Context, path string, open container.Opener, opts ...Option) (*Result, error) {
	start := time.Now()

	c, err := container.ReadFile(ctx, path, open)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	readTime := time.Since(start)

	res, err := AssembleContainer(ctx, c, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to assemble %s", path)
	}

	res.Timings = append([]Timing{{Stage: StageRead, Elapsed: readTime}}, res.Timings...)

	return res, nil
}

// AssembleContainer assembles the track held by c. c is not modified.
func AssembleContainer(ctx context.Context, c *model.Container, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := ctxlog.FromContext(ctx)

	binary, primary, secondary, err := histories(c)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	stage := func(name string, start time.Time) {
		elapsed := time.Since(start)
		res.Timings = append(res.Timings, Timing{Stage: name, Elapsed: elapsed})
		logger.Debug("assembly stage done", "stage", name, "elapsed", elapsed)
	}

	start := time.Now()
	aligned, err := align.New(align.WithKey(o.key)).AlignTrack(binary, primary, secondary)
	if err != nil {
		return nil, errors.Wrap(err, "unable to align histories")
	}
	stage(StageAlign, start)

	start = time.Now()
	res.Table, err = merge.Merge(ctx, aligned.Binary, aligned.Primary, aligned.Secondary, o.suffixes)
	if err != nil {
		return nil, errors.Wrap(err, "unable to merge histories")
	}
	stage(StageMerge, start)

	if o.registry != nil {
		start = time.Now()
		res.Report, err = o.registry.Apply(ctx, res.Table)
		if err != nil {
			return nil, errors.Wrap(err, "unable to derive fields")
		}
		stage(StageDerive, start)
	}

	if o.profiles {
		start = time.Now()
		res.Profiles, res.HasProfiles = ExtractProfiles(c)
		stage(StageProfiles, start)
	}

	res.Extra, _ = c.Group(extraEntry)

	logger.Debug("track assembled", "rows", res.Table.Len(), "columns", res.Table.NumColumns(), "single_star", secondary == nil)

	return res, nil
}

func histories(c *model.Container) (binary, primary, secondary *model.Table, err error) {
	history, ok := c.Group(historyEntry)
	if !ok {
		return nil, nil, nil, errors.Wrapf(model.ErrSchema, "missing %s group", historyEntry)
	}

	binary, ok = history.Table(binaryEntry)
	if !ok {
		return nil, nil, nil, errors.Wrapf(model.ErrSchema, "missing %s/%s table", historyEntry, binaryEntry)
	}

	primary, ok = history.Table(primaryEntry)
	if !ok {
		return nil, nil, nil, errors.Wrapf(model.ErrSchema, "missing %s/%s table", historyEntry, primaryEntry)
	}

	if _, exists := history.Get(secondaryEntry); exists {
		secondary, ok = history.Table(secondaryEntry)
		if !ok {
			return nil, nil, nil, errors.Wrapf(model.ErrSchema, "%s/%s is not a table", historyEntry, secondaryEntry)
		}
	}

	return binary, primary, secondary, nil
}
