package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/buildsrc/internal/core/domain"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	var toolchain bool

	cmd := &cobra.Command{
		Use:   "resolve [refs...]",
		Short: "Resolve dependency references against the version catalog",
		Long: `Resolve turns "name", "group:name" or "group:name:version" references into
full coordinates. With --toolchain every argument is a toolchain artifact base name
such as "stdlib".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}

			var coords []domain.Coordinate
			if toolchain {
				coords, err = c.app.ResolveToolchain(root, args)
			} else {
				coords, err = c.app.Resolve(root, args)
			}
			if err != nil {
				return err
			}

			return emit(cmd, coords, func(w io.Writer) {
				for _, coord := range coords {
					_, _ = fmt.Fprintln(w, coord)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&toolchain, "toolchain", false, "Treat arguments as toolchain artifact names")

	return cmd
}
