// Package commands implements the CLI commands for buildsrc.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/buildsrc/internal/app"
	"go.trai.ch/buildsrc/internal/build"
	"go.trai.ch/buildsrc/internal/core/domain"
)

// Application represents the application logic interface.
type Application interface {
	Configure(ctx context.Context, root string) (*app.Report, error)
	Resolve(root string, refs []string) ([]domain.Coordinate, error)
	ResolveToolchain(root string, bases []string) ([]domain.Coordinate, error)
	Locate(root string, req domain.PreloadRequest) (app.ArtifactReport, error)
	Graph(root string) ([]app.EdgeReport, error)
}

// CLI represents the command line interface for buildsrc.
type CLI struct {
	app          Application
	rootCmd      *cobra.Command
	jsonHook     func(bool)
	progressHook func(bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "buildsrc",
		Short:         "Configuration-time helpers for multi-module builds",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))

	rootCmd.PersistentFlags().StringP("root", "r", ".", "Root directory of the project")
	rootCmd.PersistentFlags().Bool("json", false, "Print results and logs as JSON")
	rootCmd.PersistentFlags().Bool("progress", false, "Print each configuration step to stderr as it completes")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.applyHooks

	rootCmd.AddCommand(c.newConfigureCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newLocateCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetJSONHook passes the json flag to fn before any command runs.
func (c *CLI) SetJSONHook(fn func(bool)) {
	c.jsonHook = fn
}

// SetProgressHook passes the progress flag to fn before any command runs.
func (c *CLI) SetProgressHook(fn func(bool)) {
	c.progressHook = fn
}

func (c *CLI) applyHooks(cmd *cobra.Command, _ []string) error {
	if err := applyFlag(cmd, "json", c.jsonHook); err != nil {
		return err
	}
	return applyFlag(cmd, "progress", c.progressHook)
}

func applyFlag(cmd *cobra.Command, name string, fn func(bool)) error {
	if fn == nil {
		return nil
	}
	enabled, err := cmd.Flags().GetBool(name)
	if err != nil {
		return err
	}
	fn(enabled)
	return nil
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func rootDir(cmd *cobra.Command) (string, error) {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return "", err
	}
	return filepath.Abs(root)
}

// emit writes v as JSON when --json is set, otherwise calls text.
func emit(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !asJSON {
		text(w)
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
