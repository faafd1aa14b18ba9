package components

import (
	"encoding/json"

	"github.com/a-h/templ"
)

// DataAttr encodes v as JSON escaped for a double-quoted data-* attribute.
// Values that cannot be encoded render as an empty object.
func DataAttr(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return templ.EscapeString(string(b))
}
