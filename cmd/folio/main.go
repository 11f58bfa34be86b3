// Command folio serves the portfolio site and offers terminal helpers for the
// contact form.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio/pkg/renderers/tui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// exitError carries a specific process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

type rootOptions struct {
	configPath string
	envFiles   []string
	// driver replaces the interactive survey prompts.
	driver tui.PromptDriver
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "folio",
		Short:         "Portfolio site with a validated contact form",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (yaml, toml or json)")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, ".env files loaded before FOLIO_* overrides")

	root.AddCommand(
		newServeCmd(opts),
		newContactCmd(opts),
		newValidateCmd(opts),
		newRenderCmd(opts),
	)
	return root
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			if exit.err != nil && exit.code != 0 {
				fmt.Fprintln(stderr, exit.err)
			}
			return exit.code
		}
		fmt.Fprintln(stderr, "folio:", err)
		return 1
	}
	return 0
}
