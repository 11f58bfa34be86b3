package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio/pkg/form"
	"github.com/goliatone/go-folio/pkg/orchestrator"
	"github.com/goliatone/go-folio/pkg/renderers/tui"
	"github.com/goliatone/go-folio/pkg/submit"
)

// exitDelivery is returned when a valid message could not be delivered.
const exitDelivery = 3

func newContactCmd(root *rootOptions) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Fill in and send the contact form from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(root)
			if err != nil {
				return err
			}
			contactForm, err := rt.orch.Form(cmd.Context(), orchestrator.Request{Source: rt.source})
			if err != nil {
				return err
			}
			sender, err := newSender(rt.cfg.Contact, nil)
			if err != nil {
				return err
			}

			driver := root.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(cmd.OutOrStdout())
			}
			renderer, err := tui.New(tui.WithPromptDriver(driver), tui.WithConfirm(confirm))
			if err != nil {
				return err
			}
			state := form.New(contactForm,
				form.WithController(submit.NewController(sender)),
				form.WithNotifier(renderer.Notifier()),
				form.WithLogger(rt.logger),
			)
			defer state.Close()

			attempt, err := renderer.Session(state).Run(cmd.Context())
			switch {
			case errors.Is(err, tui.ErrAborted), errors.Is(err, tui.ErrDeclined):
				fmt.Fprintln(cmd.ErrOrStderr(), "envio cancelado")
				return nil
			case err != nil:
				return err
			}
			if attempt.Outcome != nil && !attempt.Outcome.OK() {
				return &exitError{code: exitDelivery, err: fmt.Errorf("folio: delivery failed: %s", attempt.Outcome.Reason)}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", true, "ask before sending")
	return cmd
}
