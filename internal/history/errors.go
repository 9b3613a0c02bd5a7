package history

import "errors"

var ErrNotFound = errors.New("check not found")
