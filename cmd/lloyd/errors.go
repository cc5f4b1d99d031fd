package main

import "fmt"

type positionalError struct {
	pos int
	arg string
	err error
}

func (e *positionalError) Error() string {
	return fmt.Sprintf("argument %d (%q): %v", e.pos, e.arg, e.err)
}

func (e *positionalError) Unwrap() error { return e.err }
