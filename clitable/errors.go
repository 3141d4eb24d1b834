package clitable

import (
	"fmt"

	"github.com/pkg/errors"
)

// LookupError covers the three lookup failures of §4.6: no index row
// matches the given attributes, a requested template file is missing, or a
// requested key/column does not exist.
type LookupError struct {
	Msg string
}

func (e *LookupError) Error() string { return e.Msg }

func newLookupError(format string, args ...any) error {
	return errors.WithStack(&LookupError{Msg: fmt.Sprintf(format, args...)})
}
