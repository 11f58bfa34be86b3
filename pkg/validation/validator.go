package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-folio/pkg/model"
)

// Option configures a Validator.
type Option func(*Validator)

// WithMessages overrides the message templates for the given rules.
func WithMessages(templates map[model.Rule]string) Option {
	return func(v *Validator) {
		for rule, tmpl := range templates {
			if strings.TrimSpace(tmpl) != "" {
				v.messages[rule] = tmpl
			}
		}
	}
}

// WithFormatChecker registers a checker for a format, replacing the built-in
// one when format is model.FormatEmail.
func WithFormatChecker(format model.Format, check func(string) bool) Option {
	return func(v *Validator) {
		if format != model.FormatNone && check != nil {
			v.formats[format] = check
		}
	}
}

// Validator checks FormFields against a form model.
type Validator struct {
	form     model.FormModel
	messages map[model.Rule]string
	formats  map[model.Format]func(string) bool
}

// New constructs a Validator for form.
func New(form model.FormModel, options ...Option) *Validator {
	v := &Validator{
		form:     form,
		messages: DefaultMessages(),
		formats: map[model.Format]func(string) bool{
			model.FormatEmail: IsEmail,
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Form returns the model the validator checks against.
func (v *Validator) Form() model.FormModel {
	return v.form
}

// Validate checks every declared field. Missing inputs count as empty and
// undeclared inputs are ignored.
func (v *Validator) Validate(fields model.FormFields) Result {
	values := make(model.FormFields, len(v.form.Fields))
	var issues []FieldError
	for _, field := range v.form.Fields {
		value := strings.TrimSpace(fields.Get(field.Name))
		values[field.Name] = value
		if issue, failed := v.check(field, value); failed {
			issues = append(issues, issue)
		}
	}
	return Result{values: values, issues: issues}
}

// ValidateField checks a single field value. It returns false when the field
// is not declared.
func (v *Validator) ValidateField(name, value string) (*FieldError, bool) {
	field, ok := v.form.Field(name)
	if !ok {
		return nil, false
	}
	issue, failed := v.check(field, strings.TrimSpace(value))
	if !failed {
		return nil, true
	}
	return &issue, true
}

func (v *Validator) check(field model.Field, value string) (FieldError, bool) {
	constraint := field.Constraint
	fail := func(rule model.Rule) (FieldError, bool) {
		return FieldError{Field: field.Name, Rule: rule, Message: v.message(field, rule)}, true
	}

	if value == "" {
		if constraint.Required {
			return fail(model.RuleRequired)
		}
		return FieldError{}, false
	}

	length := utf8.RuneCountInString(value)
	if constraint.MinLength > 0 && length < constraint.MinLength {
		return fail(model.RuleMinLength)
	}
	if constraint.MaxLength > 0 && length > constraint.MaxLength {
		return fail(model.RuleMaxLength)
	}
	if constraint.Format != model.FormatNone {
		if check, ok := v.formats[constraint.Format]; ok && !check(value) {
			return fail(model.RuleFormat)
		}
	}
	return FieldError{}, false
}

var contactValidator = New(model.ContactForm())

// Validate checks fields against the built-in contact form.
func Validate(fields model.FormFields) Result {
	return contactValidator.Validate(fields)
}
