package apiclient

import (
	"encoding/json"
)

// Result is a typed Response
type Result[T any] struct {
	Success  bool   `json:"success"`
	Data     T      `json:"data"`
	Error    string `json:"error,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// OK wraps a value in a successful result
func OK[T any](v T) Result[T] {
	return Result[T]{Success: true, Data: v}
}

// Fail builds a failed result
func Fail[T any](msg string) Result[T] {
	return Result[T]{Success: false, Error: msg}
}

// As decodes a Response into Result[T]. Decode errors become failures.
func As[T any](r Response) Result[T] {
	if !r.Success {
		return Fail[T](r.Error)
	}
	var v T
	if len(r.Data) > 0 && string(r.Data) != "null" {
		if err := json.Unmarshal(r.Data, &v); err != nil {
			return Fail[T]("invalid response from server: " + err.Error())
		}
	}
	return OK(v)
}

// ErrorOr returns the response error or fallback when it is blank
func (r Response) ErrorOr(fallback string) string {
	if r.Error != "" {
		return r.Error
	}
	return fallback
}
