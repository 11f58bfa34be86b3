package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio/pkg/orchestrator"
	"github.com/goliatone/go-folio/pkg/render"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		output   string
		variant  string
		endpoint string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the static site page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(root)
			if err != nil {
				return err
			}
			if variant == "" {
				variant = rt.cfg.Theme.Variant
			}
			html, err := rt.orch.Generate(cmd.Context(), orchestrator.Request{
				Source:       rt.source,
				ThemeName:    rt.cfg.Theme.Name,
				ThemeVariant: variant,
				RenderOptions: render.RenderOptions{
					Endpoint: endpoint,
				},
			})
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("folio: write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "page written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant, e.g. light")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "contact endpoint the page script posts to")
	return cmd
}
