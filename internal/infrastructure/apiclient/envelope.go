package apiclient

import (
	"encoding/json"
	"fmt"
)

// fields decodes a JSON object into its members. ok is false for arrays,
// scalars and malformed bodies.
func fields(raw []byte) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// stringField returns obj[key] when it is a non-empty JSON string.
func stringField(obj map[string]json.RawMessage, key string) string {
	var s string
	if err := json.Unmarshal(obj[key], &s); err != nil {
		return ""
	}
	return s
}

// unwrap returns the payload of a 2xx body: the "data" member when present,
// otherwise the whole body. rejected is true when the envelope explicitly
// reports success=false. Members of unexpected types are ignored.
func unwrap(raw []byte) (data json.RawMessage, rejected bool) {
	if len(raw) == 0 {
		return nil, false
	}

	obj, ok := fields(raw)
	if !ok {
		return json.RawMessage(raw), false
	}

	var success bool
	if v, present := obj["success"]; present && json.Unmarshal(v, &success) == nil && !success {
		return nil, true
	}
	if v, present := obj["data"]; present {
		return v, false
	}
	return json.RawMessage(raw), false
}

// errorMessage picks the first non-empty string of "error" and "message",
// falling back to a generic description of the status.
func errorMessage(raw []byte, status int) string {
	if obj, ok := fields(raw); ok {
		if msg := stringField(obj, "error"); msg != "" {
			return msg
		}
		if msg := stringField(obj, "message"); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}
