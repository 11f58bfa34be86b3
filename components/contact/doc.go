// Package contact serves the contact form over HTTP.
//
// The JSON endpoint (default POST /api/contact) validates the payload, rate
// limits per client, and hands valid submissions to a sender through a
// controller keyed by the hidden _form_id field, so one rendered form can
// have at most one submission in flight. The optional form endpoint (default
// POST /contact) accepts regular form posts and re-renders the page with
// inline errors or the outcome notification.
package contact
