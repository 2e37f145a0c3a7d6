package aifml

import (
	"errors"

	"i4.energy/across/fmlgw/modem"
)

var (
	// ErrBusy is returned when the reply carries the modem's busy notice
	// instead of an HTTP response.
	ErrBusy = errors.New("modem busy")

	// ErrNotFound is returned when the service answered 404 Not Found.
	ErrNotFound = errors.New("404 Not Found")

	// ErrJSON is returned when a reply holds no JSON object, the object does
	// not decode, or a required field is missing.
	ErrJSON = errors.New("no usable JSON in reply")

	// ErrStatusFalse is returned when the service answered well-formed JSON
	// with "status": false. On the fetch path it means no data is available
	// yet.
	ErrStatusFalse = errors.New("service reported status false")

	// ErrInvalidFml is returned when fmldata decodes but violates its
	// structure, e.g. input sequences of different lengths.
	ErrInvalidFml = errors.New("invalid fmldata")

	// ErrNotSignedIn is returned when data is fetched before SignIn succeeded.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrInvalidBucket is returned for a bucket whose low bound exceeds its
	// high bound or that has no action.
	ErrInvalidBucket = errors.New("invalid bucket")
)

// IsRecoverable reports whether err is a service-level failure after which
// the caller should simply wait for the next poll. Transport failures
// (decode, connect, timeout, send) are not recoverable within the cycle.
func IsRecoverable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, modem.ErrDecode),
		errors.Is(err, modem.ErrConnect),
		errors.Is(err, modem.ErrTimeout),
		errors.Is(err, modem.ErrSend):
		return false
	}
	return errors.Is(err, ErrBusy) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrJSON) ||
		errors.Is(err, ErrStatusFalse) ||
		errors.Is(err, ErrInvalidFml)
}
