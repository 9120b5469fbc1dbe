package events

import "errors"

var ErrNotFound = errors.New("event not found")

// ErrForbidden is returned when an authenticated user tries to mutate an
// event they did not create. Ownership is the only mutation right.
var ErrForbidden = errors.New("not the event creator")
