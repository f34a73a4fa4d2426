package analyses

import "errors"

// ErrInvalidKeyword is returned when the keyword is empty after trimming.
var ErrInvalidKeyword = errors.New("keyword is required")
