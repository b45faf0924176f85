package main

import "fmt"

// newUserErrorf is a user-facing error.
// this function is mostly to avoid linters complain about errors starting with a capitalized letter.
func newUserErrorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

// duetError is a wrapper around an error that adds additional context.
type duetError struct {
	err    error
	reason string
}

func (m duetError) Error() string {
	return m.err.Error()
}

func (m duetError) Reason() string {
	return m.reason
}
