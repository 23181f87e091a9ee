package places

import "errors"

var (
	// ErrNoResults indicates the query matched no places.
	ErrNoResults = errors.New("no places found")

	// ErrSearchFailed indicates a transport, status or decoding failure.
	ErrSearchFailed = errors.New("place search failed")

	// ErrSearchUnavailable indicates search is not configured.
	ErrSearchUnavailable = errors.New("place search unavailable")
)
