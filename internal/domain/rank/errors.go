package rank

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrInvalidLimit = errors.New("invalid ranking limit")
)
