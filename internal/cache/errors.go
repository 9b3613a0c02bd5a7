package cache

import "errors"

var ErrCorruptCache = errors.New("corrupt cache file")
