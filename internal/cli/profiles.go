package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/askiada/go-binarytrack/pkg/track"
	"github.com/askiada/go-binarytrack/pkg/track/container"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

func newProfilesCommand(open OpenerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles FILE",
		Short: "List the stellar profiles stored in a track file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := container.ReadFile(ctx, args[0], opener(ctx, open))
			if err != nil {
				return err
			}

			profiles, ok := track.ExtractProfiles(c)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no profiles")

				return nil
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"Name", "Rows", "Columns"})

			for _, name := range profiles.Names() {
				node, _ := profiles.Get(name)
				switch n := node.(type) {
				case *model.Table:
					tw.AppendRow(table.Row{name, n.Len(), n.NumColumns()})
				case *model.Container:
					tw.AppendRow(table.Row{name, "", n.Len()})
				case *model.Attribute:
					tw.AppendRow(table.Row{name, "", attributeValue(n)})
				}
			}

			tw.Render()

			return nil
		},
	}
}
