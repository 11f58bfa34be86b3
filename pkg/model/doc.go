// Package model defines the typed form model consumed by the validator, the
// form state and the renderers. A FormModel is an ordered list of fields, each
// carrying an immutable FieldConstraint (required, length bounds, format) plus
// presentation hints. Models are either built from an OpenAPI operation whose
// request body declares the fields (constraints come from minLength,
// maxLength, format and required; presentation comes from the `x-folio`
// extension) or taken from ContactForm, the built-in declaration.
package model
