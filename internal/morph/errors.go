package morph

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned when a constructor or Resize receives a value
// it cannot represent, such as an even kernel dimension. The receiver is left
// unchanged.
var ErrInvalidArgument = errors.New("invalid argument")

// preconditionViolation panics for programming errors such as out-of-range
// coordinates. These are not recoverable conditions.
func preconditionViolation(format string, args ...interface{}) {
	panic("morph: precondition violation: " + fmt.Sprintf(format, args...))
}
