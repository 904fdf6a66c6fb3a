package walk

import (
	"errors"
)

// -- Sentinels --

var (
	ErrNotADirectory = errors.New("search root is not a directory")
)
