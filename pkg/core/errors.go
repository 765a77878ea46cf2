package core

import "errors"

// Error taxonomy. Every failure reported by the store or the service
// wraps exactly one of these sentinels, so callers can classify without
// string matching.
var (
	// ErrNotFound means a document (or the store root) is absent.
	ErrNotFound = errors.New("document not found")

	// ErrIndexOutOfRange means a snippet ordinal no longer resolves,
	// typically because an earlier edit shifted or removed it.
	ErrIndexOutOfRange = errors.New("snippet index out of range")

	// ErrInvalidFormat means a document lacks the matches key.
	ErrInvalidFormat = errors.New("document has no matches key")

	// ErrAlreadyExists means a collection name collides with an existing file.
	ErrAlreadyExists = errors.New("collection already exists")

	// ErrMalformedID means an identity string could not be parsed.
	ErrMalformedID = errors.New("malformed snippet id")
)
