package app

import "context"

// Composer captures long-form text from the user.
// Implemented by infrastructure (e.g. the $EDITOR composer). The inline
// TUI composer does NOT implement this; it lives entirely in the
// Bubble Tea layer as a model.
type Composer interface {
	Compose(ctx context.Context) (string, error)
}
