package luahost

import "errors"

var ErrHostClosed = errors.New("lua host closed")
