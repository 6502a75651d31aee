package render

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeError reports rendered text that is not valid UTF-8.
type DecodeError struct {
	// Name is the declaration or module being rendered.
	Name string

	// Offset is the number of bytes that validated before the failure.
	Offset int

	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("render %q: invalid UTF-8 after byte %d: %v", e.Name, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func checkText(name, text string) error {
	if _, n, err := transform.String(unicode.UTF8Validator, text); err != nil {
		return &DecodeError{Name: name, Offset: n, Err: err}
	}
	return nil
}
