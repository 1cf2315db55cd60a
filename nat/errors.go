// nat/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDirectoryNotFound = errors.New("Output directory not found")
	ErrEmptyRoute        = errors.New("Track has no route points")
	ErrFeedTooLarge      = errors.New("Feed response too large")
	ErrMissingCoordinate = errors.New("Route point is missing its latitude or longitude")
	ErrMissingTrackID    = errors.New("Track has no identifier")
	ErrNotNumeric        = errors.New("Coordinate value is not numeric")
	ErrUnexpectedStatus  = errors.New("Unexpected HTTP status")
	ErrUnknownVariant    = errors.New("Unknown route point variant")
)

// FetchError is returned when the track feed could not be retrieved or its
// contents could not be parsed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: unable to fetch tracks: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MalformedCoordinateError is returned by the coordinate codec for values
// that can't be encoded.
type MalformedCoordinateError struct {
	Value string
	Err   error
}

func (e *MalformedCoordinateError) Error() string {
	return fmt.Sprintf("%q: malformed coordinate: %v", e.Value, e.Err)
}

func (e *MalformedCoordinateError) Unwrap() error { return e.Err }

// DocumentAssemblyError wraps any failure while building or serializing one
// of the output documents. Track is empty if the failure isn't specific to
// a single track.
type DocumentAssemblyError struct {
	Document string
	Track    string
	Err      error
}

func (e *DocumentAssemblyError) Error() string {
	if e.Track != "" {
		return fmt.Sprintf("%s: track %s: %v", e.Document, e.Track, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Document, e.Err)
}

func (e *DocumentAssemblyError) Unwrap() error { return e.Err }

// WriteError is returned when an output file couldn't be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: unable to write: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DiscoveryError is returned by a LocationResolver when a required output
// directory can't be found. Searched lists the locations that were tried.
type DiscoveryError struct {
	Searched []string
	Err      error
}

func (e *DiscoveryError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("unable to locate output directory: %v", e.Err)
	}
	return fmt.Sprintf("unable to locate output directory (tried %s): %v",
		strings.Join(e.Searched, ", "), e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ErrorKind returns a short name for the kind of pipeline error err is,
// or "error" if it isn't one of the pipeline's error types.
func ErrorKind(err error) string {
	var (
		fe *FetchError
		me *MalformedCoordinateError
		de *DocumentAssemblyError
		we *WriteError
		ve *DiscoveryError
	)
	switch {
	case errors.As(err, &ve):
		return "discovery"
	case errors.As(err, &fe):
		return "fetch"
	case errors.As(err, &we):
		return "write"
	case errors.As(err, &me):
		return "coordinate"
	case errors.As(err, &de):
		return "assembly"
	default:
		return "error"
	}
}
