package core

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

const idSeparator = "::"

// SnippetID addresses one snippet as (document path, ordinal position).
//
// The ordinal is 0-based and order-significant. It is NOT stable across
// structural edits at earlier positions in the same document: removing
// the record at position k shifts every identity past k down by one.
// Batch mutations must process ordinals within a document in descending
// order; Service.MoveMany owns that discipline.
type SnippetID struct {
	File  string
	Index int
}

// NewID builds an identity from a document path and ordinal.
func NewID(file string, index int) SnippetID {
	return SnippetID{File: restoreAbsolute(file), Index: index}
}

// String renders the identity in its transport form,
// "<absolute-document-path>::<ordinal>".
func (id SnippetID) String() string {
	return id.File + idSeparator + strconv.Itoa(id.Index)
}

// ParseID is the inverse of String. It fails with ErrMalformedID when raw
// lacks the path::ordinal shape or the ordinal is not a non-negative
// integer. ParseID(id.String()) == id holds for every valid identity.
func ParseID(raw string) (SnippetID, error) {
	cut := strings.LastIndex(raw, idSeparator)
	if cut <= 0 {
		return SnippetID{}, fmt.Errorf("%w: %q", ErrMalformedID, raw)
	}

	ordinal := raw[cut+len(idSeparator):]
	index, err := strconv.Atoi(ordinal)
	if err != nil || index < 0 {
		return SnippetID{}, fmt.Errorf("%w: ordinal %q", ErrMalformedID, ordinal)
	}

	return SnippetID{File: restoreAbsolute(raw[:cut]), Index: index}, nil
}

// DecodeID parses an identity that traveled through a URL path segment or
// a JSON array of percent-encoded strings.
func DecodeID(raw string) (SnippetID, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return SnippetID{}, fmt.Errorf("%w: %q: %v", ErrMalformedID, raw, err)
	}
	return ParseID(decoded)
}

// restoreAbsolute repairs the leading separator that text transports tend
// to strip from absolute paths. Windows-style paths carry a volume name
// and need no repair.
func restoreAbsolute(path string) string {
	if filepath.VolumeName(path) == "" && !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}
