package domain

import "errors"

// ErrUnknownHandler is returned when a flow is started for a domain with no
// registered handler factory.
var ErrUnknownHandler = errors.New("unknown handler")

// ErrUnknownStep is returned when a flow handler has no step registered for
// the requested step id.
var ErrUnknownStep = errors.New("unknown step")

// ErrStoreNotFound is returned by an EntryStore when no durable store exists
// yet. It is distinguishable from a parse failure: first-run startup treats
// it as "zero prior entries".
var ErrStoreNotFound = errors.New("entry store not found")
