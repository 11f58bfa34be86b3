package model

// Contact form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// ContactForm returns the built-in contact form declaration. It matches the
// embedded OpenAPI contract and is used when no contract is configured.
func ContactForm() FormModel {
	return FormModel{
		OperationID: "sendContactMessage",
		Endpoint:    "/api/contact",
		Method:      "POST",
		Summary:     "Envia uma mensagem de contato",
		Fields: []Field{
			{
				Name:        FieldName,
				Label:       "Nome",
				Placeholder: "Seu nome",
				Control:     ControlInput,
				InputType:   "text",
				Order:       1,
				Constraint:  FieldConstraint{Required: true, MinLength: 1, MaxLength: 100},
			},
			{
				Name:        FieldEmail,
				Label:       "Email",
				Placeholder: "Seu email",
				Control:     ControlInput,
				InputType:   "email",
				Order:       2,
				Constraint:  FieldConstraint{Required: true, MaxLength: 255, Format: FormatEmail},
			},
			{
				Name:        FieldMessage,
				Label:       "Mensagem",
				Placeholder: "Sua mensagem",
				Control:     ControlTextarea,
				Rows:        5,
				Order:       3,
				Constraint:  FieldConstraint{Required: true, MinLength: 1, MaxLength: 1000},
				Messages: map[Rule]string{
					RuleRequired:  "Mensagem é obrigatória",
					RuleMaxLength: "Mensagem muito longa",
				},
			},
		},
	}
}
