package modal

import "errors"

var (
	// ErrUnknownMode is returned when a mode name does not parse.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrUnknownStatus is returned when an attention status does not parse.
	ErrUnknownStatus = errors.New("unknown status")
	// ErrAttentionExists is returned when adding an item whose id is taken.
	ErrAttentionExists = errors.New("attention item already exists")
	// ErrAttentionNotFound is returned when no item has the requested id.
	ErrAttentionNotFound = errors.New("attention item not found")
)
