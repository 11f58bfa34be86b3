package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

const extensionNamespace = "x-folio"

// UIHints is the presentation metadata read from the `x-folio` extension.
type UIHints struct {
	Label       string
	Placeholder string
	Control     Control
	InputType   string
	Rows        int
	Order       int
	Messages    map[Rule]string
}

// ParseUIExtensions extracts UI hints from an extension map. Unknown keys are
// ignored; the zero value is returned when nothing is declared.
func ParseUIExtensions(ext map[string]any) UIHints {
	var hints UIHints
	raw, ok := ext[extensionNamespace].(map[string]any)
	if !ok {
		return hints
	}

	hints.Label = stringValue(raw["label"])
	hints.Placeholder = stringValue(raw["placeholder"])
	hints.InputType = stringValue(raw["inputType"])
	if control := stringValue(raw["control"]); control != "" {
		hints.Control = Control(strings.ToLower(control))
	}
	hints.Rows, _ = intValue(raw["rows"])
	hints.Order, _ = intValue(raw["order"])

	if messages, ok := raw["messages"].(map[string]any); ok {
		for _, rule := range Rules() {
			if msg := stringValue(messages[string(rule)]); msg != "" {
				if hints.Messages == nil {
					hints.Messages = make(map[Rule]string)
				}
				hints.Messages[rule] = msg
			}
		}
	}
	return hints
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case interface{ String() string }:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}

func intValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}
