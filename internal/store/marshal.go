package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalPayload serializes a record to JSON TEXT for the payload column.
// HTML escaping is disabled so stored text matches what the datasets carry.
func marshalPayload(record any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalPayload parses a payload column back into the record type.
func unmarshalPayload(data string, record any) error {
	if err := json.Unmarshal([]byte(data), record); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}
