package geometry

import "errors"

var ErrMalformedGeometry = errors.New("malformed set geometry")
