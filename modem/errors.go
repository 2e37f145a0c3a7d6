package modem

import "errors"

var (
	// ErrNoDialer is returned when a Modem is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the modem.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when an operation is attempted on a Modem
	// that has not been successfully initialized.
	//
	// This can occur if the Dialer returned no transport or if the Modem was
	// not created via New.
	ErrNotInitialized = errors.New("modem not initialized")

	// ErrAlreadyClosed is returned when Close is called on a Modem that has
	// already been closed.
	ErrAlreadyClosed = errors.New("modem already closed")

	// ErrInvalidChunkSize is returned when the configured poll chunk size is
	// not a positive number of bytes.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrDecode is returned when the bytes read until the idle sentinel are
	// not valid UTF-8. The reply is lost; the read is not retried.
	ErrDecode = errors.New("reply is not valid UTF-8")

	// ErrTimeout is returned when the idle sentinel did not recur within the
	// configured number of chunks or the read timeout.
	ErrTimeout = errors.New("read did not reach idle")

	// ErrConnect is returned when the modem did not acknowledge a socket
	// start or an address query.
	ErrConnect = errors.New("connection not acknowledged")

	// ErrSend is returned when the modem rejected a payload declaration or
	// reported ERROR / SEND FAIL after the payload was written.
	ErrSend = errors.New("payload send failed")

	// ErrWiFi is returned when the access point association was not
	// announced by the modem.
	ErrWiFi = errors.New("wifi association failed")
)
