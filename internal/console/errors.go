package console

import "errors"

// ErrQuit ends a session at the user's request.
var ErrQuit = errors.New("session quit")
