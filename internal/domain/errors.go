package domain

import "errors"

var (
	ErrNoSession    = errors.New("no active session")
	ErrStaleSession = errors.New("session changed while request was in flight")
)
