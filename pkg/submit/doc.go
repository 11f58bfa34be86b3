// Package submit delivers validated contact payloads. A Sender does the
// delivery (DelaySender simulates it, WebhookSender posts JSON to a URL) and
// a Controller enforces that only one submission per form is in flight,
// turning sender errors into a classified Outcome.
package submit
