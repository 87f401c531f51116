package domain

import "errors"

// ErrInvalidDocument is returned when a path configuration document is missing its rules.
var ErrInvalidDocument = errors.New("invalid path configuration document")

// ErrMissingURL is returned when a screen or proposal has no location to visit.
var ErrMissingURL = errors.New("visitable must provide a url")

// ErrNotStarted is returned when an operation needs a navigation stack that is still empty.
var ErrNotStarted = errors.New("navigator has not been started")

// ErrAlreadyStarted is returned by Start when screens are already on a stack.
var ErrAlreadyStarted = errors.New("start can only be run when there are no screens on the stack")

// ErrUnknownMessage is returned when the script bridge receives a message it does not understand.
var ErrUnknownMessage = errors.New("unknown bridge message")

// ErrCacheMiss is returned by a configuration cache that holds no entry for a key.
var ErrCacheMiss = errors.New("configuration cache miss")

// ErrMissingSurfaceFactory is returned when a navigator is built without a way to create content surfaces.
var ErrMissingSurfaceFactory = errors.New("navigator requires a surface factory")
