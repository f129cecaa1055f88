package explorer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a nil required argument or a node used in an
	// operation its category does not support.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoMirror reports a structural edit on a node without a backing collection.
	ErrNoMirror = errors.New("node mirrors no collection")
	// ErrPending reports an insert under an unpopulated node with no expander
	// registered to populate it.
	ErrPending = errors.New("node is not populated")
)

// DirectoryError is returned when a directory cannot be listed during lazy
// population. The node is left childless and may be activated again.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("list directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }
