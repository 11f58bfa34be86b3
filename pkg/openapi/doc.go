// Package openapi exposes the contract types used to describe the contact
// endpoint: where an OpenAPI document comes from (Source), its raw payload
// (Document) and the operations extracted from it. Loader and parser
// implementations live under internal/openapi and are constructed through
// the top-level folio package.
//
// The contact form constraints are declared on the request body schema of the
// `sendContactMessage` operation. Field ordering, labels and message overrides
// travel in the `x-folio` extension of each property.
package openapi
