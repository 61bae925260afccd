package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/buildsrc/internal/app"
)

func (c *CLI) newConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Resolve dependencies, locate preloaded artifacts and link tasks of every module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}

			report, err := c.app.Configure(cmd.Context(), root)
			if err != nil {
				return err
			}

			return emit(cmd, report, func(w io.Writer) {
				printReport(w, report)
			})
		},
	}
}

func printReport(w io.Writer, report *app.Report) {
	for _, m := range report.Modules {
		_, _ = fmt.Fprintf(w, "%s\n", m.Path)
		for _, dep := range m.Dependencies {
			_, _ = fmt.Fprintf(w, "  dependency %s\n", dep)
		}
		for _, dep := range m.Toolchain {
			_, _ = fmt.Fprintf(w, "  toolchain  %s\n", dep)
		}
		for _, a := range m.Artifacts {
			marker := ""
			if a.Changed {
				marker = " (changed)"
			}
			_, _ = fmt.Fprintf(w, "  artifacts  %s %d file(s) %s%s\n", a.Key, len(a.Paths), a.Fingerprint, marker)
		}
	}
	printEdges(w, report.Edges)
}
