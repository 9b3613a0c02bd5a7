package repo

import "errors"

var (
	ErrCommandFailed      = errors.New("git command failed")
	ErrUnrecognizedOrigin = errors.New("unrecognized origin URL")
)
