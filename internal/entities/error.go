package entities

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNetwork    = errors.New("network error")
	ErrData       = errors.New("data error")
)

// KindError attaches one of the sentinel kinds to a message while keeping the
// underlying cause reachable through errors.Is/As.
type KindError struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *KindError) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *KindError) Is(target error) bool {
	return target == e.Kind
}

func (e *KindError) Unwrap() error {
	return e.Cause
}

func ValidationError(msg string) error {
	return &KindError{Kind: ErrValidation, Msg: msg}
}

func NetworkError(msg string, cause error) error {
	return &KindError{Kind: ErrNetwork, Msg: msg, Cause: cause}
}

func DataError(msg string, cause error) error {
	return &KindError{Kind: ErrData, Msg: msg, Cause: cause}
}
