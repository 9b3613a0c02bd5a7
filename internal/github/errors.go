package github

import "errors"

var (
	ErrRemoteUnavailable  = errors.New("remote API unavailable")
	ErrRemoteTimeout      = errors.New("remote API timeout")
	ErrRemoteProtocol     = errors.New("unexpected remote API response")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)
