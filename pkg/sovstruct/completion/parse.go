package completion

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedBlock = regexp.MustCompile("(?s)```(?:json|JSON)?[ \\t]*\\n?(.*?)\\s*```")

// ExtractPayload isolates the structured part of a completion. The content of
// a fenced code block wins; otherwise the text from the first '{' or '[' to
// the last '}' or ']' is returned. ok is false when neither is present.
func ExtractPayload(text string) (payload string, ok bool) {
	text = strings.TrimSpace(text)

	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		payload = strings.TrimSpace(m[1])
		return payload, payload != ""
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexAny(text, "}]")
	if end < start {
		return "", false
	}
	return strings.TrimSpace(text[start : end+1]), true
}

// DecodeLoose decodes the structured payload of a completion into v.
// It returns false when the text holds nothing decodable; v is then left
// in an unspecified state and must not be used.
func DecodeLoose(text string, v interface{}) bool {
	payload, ok := ExtractPayload(text)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(payload), v) == nil
}
