package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type existsError struct {
	kind string
	id   string
}

func (e existsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.kind, e.id)
}

func errExists(kind, id string) error {
	return existsError{kind: kind, id: id}
}

// unmovedError reports a move the explorer refused, e.g. at a list edge.
type unmovedError struct {
	what string
}

func (e unmovedError) Error() string {
	return fmt.Sprintf("cannot move %s", e.what)
}
