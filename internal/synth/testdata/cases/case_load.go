package cases

import (
	"encoding/json"
)

// load decodes the saved state of a slot.
//errsum:errors *encoding/json.UnsupportedTypeError = "Codec", *encoding/json.SyntaxError
func load(raw []byte) map[string]any {
	var state map[string]any
	_ = json.Unmarshal(raw, &state)
	return state
}
