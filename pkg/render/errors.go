package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-folio/pkg/model"
)

// ErrorMapping splits an error payload into inline field messages and
// form-level messages.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

var pathPrefixes = []string{"$.", "$", "request.", "request/", "payload.", "payload/", "body.", "body/"}

// MapErrorPayload resolves payload keys (plain names, dotted paths or JSON
// pointers such as "/body/email") to declared fields. Keys that do not
// resolve become form-level messages so nothing is lost.
func MapErrorPayload(form model.FormModel, payload map[string]string) ErrorMapping {
	var mapping ErrorMapping
	for raw, message := range payload {
		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		name, ok := resolveField(form, raw)
		if !ok {
			mapping.Form = append(mapping.Form, message)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string]string)
		}
		if _, exists := mapping.Fields[name]; !exists {
			mapping.Fields[name] = message
		}
	}
	mapping.Form = normalizeMessages(sortedCopy(mapping.Form))
	return mapping
}

func resolveField(form model.FormModel, raw string) (string, bool) {
	path := strings.TrimSpace(raw)
	path = strings.TrimPrefix(path, "/")
	for changed := true; changed; {
		changed = false
		for _, prefix := range pathPrefixes {
			if strings.HasPrefix(path, prefix) {
				path = strings.TrimPrefix(path, prefix)
				changed = true
			}
		}
	}
	if path == "" {
		return "", false
	}
	if _, ok := form.Field(path); ok {
		return path, true
	}
	return "", false
}

// MergeFormErrors concatenates messages, trimming whitespace and dropping
// duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
