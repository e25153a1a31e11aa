package types

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// TokenResponse is returned by registration and login.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the single-message error/ack shape.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ErrorsResponse is the itemized validation failure shape.
type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

type FieldError struct {
	Msg string `json:"msg"`
}

// ValidationErrors converts validator failures into the itemized response,
// using the request type's per-field message map.
func ValidationErrors(err error, messages map[string]string) ErrorsResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			msg := messages[fe.Field()]
			if msg == "" {
				msg = fe.Error()
			}
			out = append(out, FieldError{Msg: msg})
		}
		return ErrorsResponse{Errors: out}
	}
	return ErrorsResponse{Errors: []FieldError{{Msg: err.Error()}}}
}
