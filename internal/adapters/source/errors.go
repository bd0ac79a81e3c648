package source

import (
	"errors"
	"fmt"
)

// Sentinel kinds for acquisition errors.
var (
	ErrMissingInput = errors.New("raw dataset unavailable")
)

func wrapMissing(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMissingInput, path, err)
}
