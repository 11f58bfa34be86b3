package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	pkgopenapi "github.com/goliatone/go-folio/pkg/openapi"
)

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
	errNoFields               = errors.New("model builder: request body declares no fields")
)

// Builder converts OpenAPI operations into form models.
type Builder interface {
	Build(op pkgopenapi.Operation) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builder)

// WithLabeler overrides the label used when a property declares none.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(b *builder) {
		if labeler != nil {
			b.labeler = labeler
		}
	}
}

// WithDecorators registers decorators applied after the model is built.
func WithDecorators(decorators ...Decorator) BuilderOption {
	return func(b *builder) {
		b.decorators = append(b.decorators, decorators...)
	}
}

type builder struct {
	labeler    func(string) string
	decorators []Decorator
}

// NewBuilder returns a Builder.
func NewBuilder(options ...BuilderOption) Builder {
	b := &builder{labeler: DefaultLabeler}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build transforms the operation's request body into a FormModel. Only flat
// string properties are supported; fields are ordered by the `x-folio`
// order hint and then by name.
func (b *builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
	}

	body := op.RequestBody
	if len(body.Properties) == 0 {
		return FormModel{}, errNoFields
	}

	for name, schema := range body.Properties {
		if schema.Type != "" && schema.Type != "string" {
			return FormModel{}, fmt.Errorf("model builder: field %q: unsupported type %q", name, schema.Type)
		}
		form.Fields = append(form.Fields, b.fieldFromSchema(name, schema, body.IsRequired(name)))
	}

	sort.SliceStable(form.Fields, func(i, j int) bool {
		left, right := form.Fields[i], form.Fields[j]
		if left.Order != right.Order {
			// Unordered fields go last.
			if left.Order == 0 {
				return false
			}
			if right.Order == 0 {
				return true
			}
			return left.Order < right.Order
		}
		return left.Name < right.Name
	})

	for _, decorator := range b.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return FormModel{}, fmt.Errorf("model builder: decorate: %w", err)
		}
	}

	return form, nil
}

func (b *builder) fieldFromSchema(name string, schema pkgopenapi.Schema, required bool) Field {
	hints := ParseUIExtensions(schema.Extensions)

	field := Field{
		Name:        name,
		Label:       hints.Label,
		Placeholder: hints.Placeholder,
		Control:     hints.Control,
		InputType:   hints.InputType,
		Rows:        hints.Rows,
		Order:       hints.Order,
		Messages:    hints.Messages,
		Constraint: FieldConstraint{
			Required: required,
			Format:   Format(schema.Format),
		},
	}
	if field.Label == "" {
		field.Label = b.labeler(name)
	}
	if field.Control == "" {
		field.Control = ControlInput
	}
	if field.InputType == "" && field.Control == ControlInput {
		field.InputType = "text"
		if field.Constraint.Format == FormatEmail {
			field.InputType = "email"
		}
	}
	if schema.MinLength != nil {
		field.Constraint.MinLength = *schema.MinLength
	}
	if schema.MaxLength != nil {
		field.Constraint.MaxLength = *schema.MaxLength
	}
	if field.Constraint.Format != FormatEmail {
		// Other formats carry no check.
		field.Constraint.Format = FormatNone
	}
	return field
}

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return errOperationIDMissing
	}
	if op.Path == "" {
		return errOperationPathMissing
	}
	if op.Method == "" {
		return errOperationMethodMissing
	}
	return nil
}

// DefaultLabeler capitalises the first letter of a property name.
func DefaultLabeler(name string) string {
	name = strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(name))
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
