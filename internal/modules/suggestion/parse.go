package suggestion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError means the upstream answered but the body could not
// be turned into activity descriptors.
type MalformedResponseError struct {
	Reason string
	Cause  error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed suggestion response: %s: %v", e.Reason, e.Cause)
	}
	return "malformed suggestion response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

func malformed(reason string, cause error) error {
	return &MalformedResponseError{Reason: reason, Cause: cause}
}

type envelope struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata json.RawMessage `json:"usageMetadata"`
}

// ExtractText returns candidates[0].content.parts[0].text, trimmed.
func ExtractText(raw []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", malformed("envelope is not valid json", err)
	}
	if len(env.Candidates) == 0 {
		return "", malformed("no candidates", nil)
	}
	c := env.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 || c.Parts[0].Text == nil {
		return "", malformed("candidate has no text part", nil)
	}
	return strings.TrimSpace(*c.Parts[0].Text), nil
}

// ExtractUsage returns the usageMetadata object, or nil when absent or unreadable.
func ExtractUsage(raw []byte) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}
	if len(env.UsageMetadata) == 0 || string(env.UsageMetadata) == "null" {
		return nil
	}
	return env.UsageMetadata
}

// ParseDescriptors pulls the outermost JSON array out of model text, with or
// without markdown fences, and decodes it as a non-empty list of objects.
func ParseDescriptors(text string) ([]Descriptor, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.IndexByte(cleaned, '[')
	end := strings.LastIndexByte(cleaned, ']')
	if start < 0 || end < 0 || end <= start {
		return nil, malformed("no json array in text", nil)
	}

	var items []Value
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &items); err != nil {
		return nil, malformed("array is not valid json", err)
	}
	if len(items) == 0 {
		return nil, malformed("empty activity array", nil)
	}
	out := make([]Descriptor, 0, len(items))
	for i, it := range items {
		obj, ok := it.Object()
		if !ok {
			return nil, malformed(fmt.Sprintf("element %d is not an object", i), nil)
		}
		out = append(out, Descriptor(obj))
	}
	return out, nil
}
