package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidCredentials covers every remote rejection. Wrong password,
	// unknown user, and transport failure are indistinguishable on purpose.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSuperseded is returned to a login caller whose in-flight attempt was
	// overtaken by a newer login or a logout. The newer operation's outcome
	// owns the controller state.
	ErrSuperseded = errors.New("login superseded by a newer request")
)

// ValidationError reports malformed login input. It is raised before any
// network call and is meant to surface as an inline field error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
