package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/buildsrc/internal/core/domain"
)

func (c *CLI) newLocateCmd() *cobra.Command {
	var req domain.PreloadRequest

	cmd := &cobra.Command{
		Use:   "locate [names...]",
		Short: "Find preloaded artifacts by base name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}

			req.Names = args
			ar, err := c.app.Locate(root, req)
			if err != nil {
				return err
			}

			return emit(cmd, ar, func(w io.Writer) {
				for _, path := range ar.Paths {
					_, _ = fmt.Fprintln(w, path)
				}
			})
		},
	}

	cmd.Flags().StringVar(&req.Dir, "dir", "", "Directory to search, relative to the root (default: the dependencies directory)")
	cmd.Flags().StringVar(&req.Subdir, "subdir", "", "Subdirectory of the searched directory")
	cmd.Flags().BoolVar(&req.SDK, "sdk", false, "Search the SDK directory")
	cmd.Flags().BoolVar(&req.Core, "core", false, "Search the SDK core directory")

	return cmd
}
