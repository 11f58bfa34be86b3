package model

// Decorator adjusts a form model after it has been built from the contract,
// e.g. to apply configured message overrides.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// WithMessages returns a Decorator that sets per-rule message overrides.
// Keys of overrides are field names.
func WithMessages(overrides map[string]map[Rule]string) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		for i := range form.Fields {
			extra, ok := overrides[form.Fields[i].Name]
			if !ok {
				continue
			}
			if form.Fields[i].Messages == nil {
				form.Fields[i].Messages = make(map[Rule]string, len(extra))
			}
			for rule, msg := range extra {
				form.Fields[i].Messages[rule] = msg
			}
		}
		return nil
	})
}
