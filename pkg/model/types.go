package model

import "strings"

// FormFields maps a field name to its raw, untrimmed value.
type FormFields map[string]string

// Clone returns an independent copy.
func (f FormFields) Clone() FormFields {
	if f == nil {
		return FormFields{}
	}
	out := make(FormFields, len(f))
	for key, value := range f {
		out[key] = value
	}
	return out
}

// Get returns the value stored for name, or "" when absent.
func (f FormFields) Get(name string) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// Format names a value grammar a field must satisfy.
type Format string

const (
	FormatNone  Format = ""
	FormatEmail Format = "email"
)

// Rule identifies a single constraint check. Rules are evaluated in the
// order they are declared below.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleMinLength Rule = "minLength"
	RuleMaxLength Rule = "maxLength"
	RuleFormat    Rule = "format"
)

// Rules lists every rule in evaluation order.
func Rules() []Rule {
	return []Rule{RuleRequired, RuleMinLength, RuleMaxLength, RuleFormat}
}

// Control selects the input widget a renderer uses for a field.
type Control string

const (
	ControlInput    Control = "input"
	ControlTextarea Control = "textarea"
)

// FieldConstraint captures the checks applied to a field. A zero MaxLength
// means unbounded.
type FieldConstraint struct {
	Required  bool   `json:"required"`
	MinLength int    `json:"minLength,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`
	Format    Format `json:"format,omitempty"`
}

// Field models an individual input of a form.
type Field struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Placeholder string          `json:"placeholder,omitempty"`
	Control     Control         `json:"control"`
	InputType   string          `json:"inputType,omitempty"`
	Rows        int             `json:"rows,omitempty"`
	Order       int             `json:"order,omitempty"`
	Constraint  FieldConstraint `json:"constraint"`
	// Messages overrides the default message for a rule.
	Messages map[Rule]string `json:"messages,omitempty"`
}

// Message returns the override registered for rule, if any.
func (f Field) Message(rule Rule) (string, bool) {
	if len(f.Messages) == 0 {
		return "", false
	}
	msg, ok := f.Messages[rule]
	if !ok || strings.TrimSpace(msg) == "" {
		return "", false
	}
	return msg, true
}

// FormModel is the ordered field declaration for one form.
type FormModel struct {
	OperationID string  `json:"operationId"`
	Endpoint    string  `json:"endpoint"`
	Method      string  `json:"method"`
	Summary     string  `json:"summary,omitempty"`
	Fields      []Field `json:"fields"`
}

// Field looks up a declared field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names returns the declared field names in order.
func (m FormModel) Names() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Empty returns a FormFields with every declared field set to "".
func (m FormModel) Empty() FormFields {
	out := make(FormFields, len(m.Fields))
	for _, field := range m.Fields {
		out[field.Name] = ""
	}
	return out
}
