package cli

import "fmt"

type storeError struct {
	op       string
	location string
	err      error
}

func (e storeError) Error() string {
	return fmt.Sprintf("%s dismissal at %s: %v", e.op, e.location, e.err)
}

func (e storeError) Unwrap() error { return e.err }

func errStore(op, location string, err error) error {
	return storeError{op: op, location: location, err: err}
}
