package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/orchestrator"
	"github.com/goliatone/go-folio/pkg/validation"
)

// exitInvalid is returned when the checked values fail validation.
const exitInvalid = 2

var errInvalid = errors.New("folio: contact values are invalid")

func newValidateCmd(root *rootOptions) *cobra.Command {
	var (
		values = model.FormFields{}
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check contact values with the site's validation rules",
		Example: `  folio validate --name Ana --email ana@example.com --message "Olá!"
  folio validate --email nope --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(root)
			if err != nil {
				return err
			}
			form, err := rt.orch.Form(cmd.Context(), orchestrator.Request{Source: rt.source})
			if err != nil {
				return err
			}
			result := validation.New(form).Validate(values)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(validationReport{Valid: result.Valid(), Errors: result.Errors()}); err != nil {
					return err
				}
			} else if result.Valid() {
				fmt.Fprintln(out, "ok")
			} else {
				for _, issue := range result.Issues() {
					fmt.Fprintf(out, "%s: %s\n", issue.Field, issue.Message)
				}
			}
			if !result.Valid() {
				return &exitError{code: exitInvalid, err: errInvalid}
			}
			return nil
		},
	}
	for _, name := range []string{model.FieldName, model.FieldEmail, model.FieldMessage} {
		cmd.Flags().Var(fieldValue{values: values, name: name}, name, "value of the "+name+" field")
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

type validationReport struct {
	Valid  bool                   `json:"valid"`
	Errors validation.FieldErrors `json:"errors,omitempty"`
}

// fieldValue binds one flag to a key of a FormFields map.
type fieldValue struct {
	values model.FormFields
	name   string
}

func (f fieldValue) String() string {
	if f.values == nil {
		return ""
	}
	return f.values[f.name]
}

func (f fieldValue) Set(value string) error {
	f.values[f.name] = value
	return nil
}

func (f fieldValue) Type() string { return "string" }
