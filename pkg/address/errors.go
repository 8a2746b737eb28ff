package address

import "errors"

// Error definitions
var (
	ErrInvalidLength = errors.New("decoded address is not 32 bytes")
)
