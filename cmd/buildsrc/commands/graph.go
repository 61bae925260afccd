package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/buildsrc/internal/app"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the task edges produced by the link declarations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}

			edges, err := c.app.Graph(root)
			if err != nil {
				return err
			}

			return emit(cmd, edges, func(w io.Writer) {
				printEdges(w, edges)
			})
		},
	}
}

func printEdges(w io.Writer, edges []app.EdgeReport) {
	for _, e := range edges {
		_, _ = fmt.Fprintf(w, "%s -> %s\n", e.From, e.To)
	}
}
