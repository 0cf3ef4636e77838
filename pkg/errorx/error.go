package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

// Is reports whether target is an Error with the same code, so callers can
// write errors.Is(err, errorx.New(errorx.NotFound, "")).
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// CodeOf returns the code of err, or the code of Unknown if err is not an
// Error.
func CodeOf(err error) Code {
	var errx Error
	if As(err, &errx) {
		return errx.Code
	}

	return Unknown.Code
}
