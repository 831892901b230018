package formatter

import (
	"encoding/json"
	"fmt"
)

// BuildJSON serializes a response to indented JSON followed by a newline.
func BuildJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return append(b, '\n'), nil
}
