package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-binarytrack/internal/ctxlog"
	"github.com/askiada/go-binarytrack/pkg/export"
	"github.com/askiada/go-binarytrack/pkg/grid"
)

// ErrTracksFailed is returned by the grid command when some tracks failed.
var ErrTracksFailed = errors.New("tracks failed")

func newGridCommand(open OpenerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid DIR",
		Short: "Assemble every track file of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := getConfig(ctx)

			opts, err := cfg.TrackOptions()
			if err != nil {
				return err
			}

			format, err := export.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}

			summary, err := grid.Run(ctx, grid.Config{
				Dir:             args[0],
				Pattern:         cfg.Grid.Pattern,
				Workers:         cfg.Grid.Workers,
				ContinueOnError: cfg.Grid.ContinueOnError,
				Opener:          opener(ctx, open),
				Options:         opts,
				OutputDir:       cfg.Output.Dir,
				Format:          format,
			})
			if err != nil {
				return err
			}

			logger := ctxlog.FromContext(ctx)
			for name, mt := range summary.Measure.AllMetrics() {
				logger.Debug("step measure", "step", name, "count", mt.Count(), "avg", mt.AVGDuration(), "wait", mt.AVGWaitDuration(), "total", mt.TotalDuration())
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"File", "Rows", "Columns", "Elapsed", "Output", "Error"})

			for _, f := range summary.Files {
				errText := ""
				if f.Err != nil {
					errText = f.Err.Error()
				}
				tw.AppendRow(table.Row{f.Path, f.Rows, f.Columns, f.Elapsed, f.Output, errText})
			}

			tw.AppendFooter(table.Row{fmt.Sprintf("%d files", len(summary.Files)), "", "", "", summary.RunID, fmt.Sprintf("%d failed", summary.Failed())})
			tw.Render()

			if failed := summary.Failed(); failed > 0 {
				return errors.Wrapf(ErrTracksFailed, "%d of %d", failed, len(summary.Files))
			}

			return nil
		},
	}

	cmd.Flags().Int("workers", 0, "concurrent assemblies")
	cmd.Flags().String("pattern", "", "file pattern inside DIR")
	cmd.Flags().Bool("continue-on-error", false, "keep going when a track fails")
	cmd.Flags().String("output-dir", "", "directory receiving one export per track")
	cmd.Flags().String("format", "", "output format (csv|json|table|sqlite)")
	cmd.Flags().Bool("compare", false, "suffix primary columns with _1 and secondary columns with _2")
	cmd.Flags().StringSlice("disable", nil, "derived field to skip (repeatable)")

	return cmd
}
