package metadata

import (
	"fmt"

	"github.com/MichalMitros/google-feed-generator/internal/platform"
)

// ValidationError is returned when invalid argument is passed to Service.
type ValidationError struct {
	Argument string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s", platform.ErrValidation, e.Argument)
}

// Is reports ValidationError as platform.ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == platform.ErrValidation
}
