package texttable

import (
	"fmt"

	"github.com/pkg/errors"
)

// MutationError is returned when a table mutator is given data inconsistent
// with the table's shape: a row of the wrong length, a missing required
// column, or a duplicate column name.
type MutationError struct {
	Msg string
}

func (e *MutationError) Error() string { return e.Msg }

func newMutationError(format string, args ...any) error {
	return errors.WithStack(&MutationError{Msg: fmt.Sprintf(format, args...)})
}

// LookupError is returned when a requested row, column, or key does not
// exist in the table.
type LookupError struct {
	Msg string
}

func (e *LookupError) Error() string { return e.Msg }

func newLookupError(format string, args ...any) error {
	return errors.WithStack(&LookupError{Msg: fmt.Sprintf(format, args...)})
}
