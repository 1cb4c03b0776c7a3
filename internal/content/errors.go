package content

import "errors"

var (
	ErrInvalidContent = errors.New("content: invalid content file")
	ErrNotLoaded      = errors.New("content: nothing loaded")
)
