package errorx

import "errors"

func As(err error, target *Error) bool {
	return errors.As(err, target)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var errx Error
	if !errors.As(err, &errx) {
		return false
	}

	return errx.Code == code
}
