package domain

import (
	"encoding/json"
)

// HighlightTitleKey is the key injected into every ResultItem with the
// display title.
const HighlightTitleKey = "h_title"

var jsonNull = json.RawMessage("null")

// ResultItem is a stored document as field name to raw JSON value. Values are
// carried verbatim, so numbers and nested objects keep the engine's encoding.
type ResultItem map[string]json.RawMessage

// DecodeResultItem parses a stored document.
func DecodeResultItem(source []byte) (ResultItem, error) {
	var item ResultItem
	if err := json.Unmarshal(source, &item); err != nil {
		return nil, err
	}
	if item == nil {
		item = ResultItem{}
	}
	return item, nil
}

// String returns the value under key when it is a JSON string.
func (r ResultItem) String(key string) (string, bool) {
	raw, ok := r[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SetString stores value as a JSON string.
func (r ResultItem) SetString(key, value string) {
	b, _ := json.Marshal(value)
	r[key] = b
}

// CopyField stores the raw value of src under dst, or null when src is absent.
func (r ResultItem) CopyField(src, dst string) {
	if v, ok := r[src]; ok {
		r[dst] = v
		return
	}
	r[dst] = jsonNull
}
