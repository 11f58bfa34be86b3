// Package validation checks raw form input against a model.FormModel.
//
// Each declared field is trimmed and run through its rules in a fixed order
// (required, minLength, maxLength, format); the first failing rule produces
// the field's single message. Validation is pure: the same input always
// yields the same Result and nothing is mutated.
package validation
