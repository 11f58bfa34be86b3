// Package orchestrator wires contract loading, parsing, model building,
// content preparation, theme selection and rendering into a single call.
package orchestrator
