package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-binarytrack/pkg/track"
	"github.com/askiada/go-binarytrack/pkg/track/derive"
)

func newFieldsCommand(open OpenerFunc) *cobra.Command {
	var dot string

	cmd := &cobra.Command{
		Use:   "fields [FILE]",
		Short: "List the derived fields, or draw their dependency graph",
		Long: `List the derived fields in evaluation order. With --dot, write the dependency graph
in Graphviz DOT format instead. When FILE is given the track is assembled first and the
fields are reported, or coloured, by what happened to them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := getConfig(ctx)

			reg, err := cfg.Registry()
			if err != nil {
				return err
			}

			var report *derive.Report
			if len(args) == 1 {
				opts, err := cfg.TrackOptions()
				if err != nil {
					return err
				}

				res, err := track.Assemble(ctx, args[0], opener(ctx, open), append(opts, track.WithoutProfiles())...)
				if err != nil {
					return err
				}
				report = res.Report
			}

			if dot != "" {
				w, closeFn, err := output(cmd, dot)
				if err != nil {
					return errors.Wrapf(err, "unable to create %s", dot)
				}

				err = derive.Draw(w, reg, report)
				if err != nil {
					_ = closeFn()

					return err
				}

				return closeFn()
			}

			status := make(map[string]derive.Entry)
			if report != nil {
				for _, e := range report.Entries {
					status[e.Name] = e
				}
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)

			header := table.Row{"Name", "Requires", "Description"}
			if report != nil {
				header = append(header, "Status")
			}
			tw.AppendHeader(header)

			for _, f := range reg.Fields() {
				row := table.Row{f.Name, strings.Join(f.Requires, ", "), f.Doc}
				if report != nil {
					e := status[f.Name]
					s := e.Status.String()
					if len(e.Missing) > 0 {
						s += ": " + strings.Join(e.Missing, ", ")
					}
					row = append(row, s)
				}
				tw.AppendRow(row)
			}

			tw.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&dot, "dot", "", "write the dependency graph in DOT format to this file (- for stdout)")
	cmd.Flags().StringSlice("disable", nil, "derived field to skip (repeatable)")

	return cmd
}
