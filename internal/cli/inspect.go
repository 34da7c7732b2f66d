package cli

import (
	"fmt"
	"io"
	"path"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/askiada/go-binarytrack/pkg/track/container"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

func newInspectCommand(open OpenerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the groups, tables and attributes of a track file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := container.ReadFile(ctx, args[0], opener(ctx, open))
			if err != nil {
				return err
			}

			renderTree(cmd.OutOrStdout(), c)

			return nil
		},
	}
}

func renderTree(w io.Writer, c *model.Container) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Path", "Kind", "Rows", "Columns"})

	var walk func(prefix string, c *model.Container)
	walk = func(prefix string, c *model.Container) {
		for _, name := range c.Names() {
			p := path.Join(prefix, name)
			node, _ := c.Get(name)
			switch n := node.(type) {
			case *model.Container:
				tw.AppendRow(table.Row{p, "group", "", n.Len()})
				walk(p, n)
			case *model.Table:
				tw.AppendRow(table.Row{p, "table", n.Len(), n.NumColumns()})
			case *model.Attribute:
				tw.AppendRow(table.Row{p, "attribute", "", attributeValue(n)})
			}
		}
	}
	walk("/", c)

	tw.Render()
}

func attributeValue(a *model.Attribute) string {
	if v, ok := a.Scalar(); ok {
		return fmt.Sprint(v)
	}

	if len(a.Text) == 1 {
		return a.Text[0]
	}

	return fmt.Sprintf("%d values", len(a.Values)+len(a.Text))
}
