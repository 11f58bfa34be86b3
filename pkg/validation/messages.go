package validation

import (
	"fmt"

	"github.com/goliatone/go-folio/pkg/model"
)

// DefaultMessages holds the pt-BR message templates keyed by rule. Each
// template receives the field label.
func DefaultMessages() map[model.Rule]string {
	return map[model.Rule]string{
		model.RuleRequired:  "%s é obrigatório",
		model.RuleMinLength: "%s muito curto",
		model.RuleMaxLength: "%s muito longo",
		model.RuleFormat:    "%s inválido",
	}
}

func (v *Validator) message(field model.Field, rule model.Rule) string {
	if msg, ok := field.Message(rule); ok {
		return msg
	}
	tmpl, ok := v.messages[rule]
	if !ok {
		tmpl = DefaultMessages()[rule]
	}
	return fmt.Sprintf(tmpl, field.Label)
}
