package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pathlearn/pathinformatica/internal/content"
)

// ExportDocument is the user-facing progress export: the progress record
// plus the export timestamp. There is no import counterpart.
type ExportDocument struct {
	Progress   content.UserProgress `json:"progress"`
	ExportDate string               `json:"exportDate"`
}

// ExportProgress renders the progress record as an indented JSON document
// stamped with the export time in RFC 3339 UTC.
func ExportProgress(p content.UserProgress, now time.Time) ([]byte, error) {
	doc := ExportDocument{
		Progress:   p,
		ExportDate: now.UTC().Format(time.RFC3339),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return buf.Bytes(), nil
}
