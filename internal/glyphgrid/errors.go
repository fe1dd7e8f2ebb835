package glyphgrid

import "errors"

var (
	// ErrNoContext indicates the drawing surface could not provide a
	// rendering context.
	ErrNoContext = errors.New("glyphgrid: rendering context unavailable")

	// ErrInvalidParams indicates a parameter outside its valid range.
	ErrInvalidParams = errors.New("glyphgrid: invalid parameters")
)
