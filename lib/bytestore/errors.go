package bytestore

import "errors"

var (
	ErrInvalidWhence    = errors.New("bytestore: invalid whence")
	ErrNegativePosition = errors.New("bytestore: negative seek position")
)
