package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// MsgNoResponse is reported when the backend could not be reached
const MsgNoResponse = "No response from server"

// ExtractErrorMessage picks the user-facing message from an error response.
// A string "message" wins, an object "message" is stringified, otherwise the status text is used.
func ExtractErrorMessage(status int, body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Message) > 0 && string(payload.Message) != "null" {
		var s string
		if err := json.Unmarshal(payload.Message, &s); err == nil {
			if s != "" {
				return s
			}
		} else {
			return string(payload.Message)
		}
	}
	return statusText(status)
}

func statusText(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("Request failed with status code %d", status)
}
