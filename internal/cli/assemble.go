package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-binarytrack/internal/ctxlog"
	"github.com/askiada/go-binarytrack/pkg/export"
	"github.com/askiada/go-binarytrack/pkg/track"
)

func newAssembleCommand(open OpenerFunc) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "assemble FILE",
		Short: "Assemble one track and write the merged table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := getConfig(ctx)
			logger := ctxlog.FromContext(ctx)

			format, err := export.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}

			if format == export.SQLite && out == "" {
				return errors.New("the sqlite format needs an output file (-o)")
			}

			opts, err := cfg.TrackOptions()
			if err != nil {
				return err
			}

			res, err := track.Assemble(ctx, args[0], opener(ctx, open), append(opts, track.WithoutProfiles())...)
			if err != nil {
				return err
			}

			for _, t := range res.Timings {
				logger.Debug("stage", "name", t.Stage, "elapsed", t.Elapsed)
			}
			logger.Info("track assembled", "file", args[0], "rows", res.Table.Len(), "columns", res.Table.NumColumns(), "elapsed", res.Elapsed())

			if format == export.SQLite {
				db, err := export.OpenSQLite(ctx, out)
				if err != nil {
					return err
				}
				defer db.Close()

				name, err := db.WriteTrack(ctx, args[0], res.Table)
				if err != nil {
					return err
				}
				logger.Info("track stored", "database", out, "table", name, "run_id", db.RunID())

				return nil
			}

			w, closeFn, err := output(cmd, out)
			if err != nil {
				return errors.Wrapf(err, "unable to create %s", out)
			}

			err = export.Write(w, format, res.Table)
			if err != nil {
				_ = closeFn()

				return err
			}

			return closeFn()
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().String("format", "", "output format (csv|json|table|sqlite)")
	cmd.Flags().Bool("compare", false, "suffix primary columns with _1 and secondary columns with _2")
	cmd.Flags().StringSlice("disable", nil, "derived field to skip (repeatable)")

	return cmd
}
