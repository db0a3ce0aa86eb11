package domain

import "errors"

var (
	// ErrInvalidPeerKey means the peer's public key is not a valid curve
	// point. Fatal to the handshake.
	ErrInvalidPeerKey = errors.New("invalid peer public key")

	// ErrHandshakeTimeout means no peer public key arrived within the
	// configured interval. Fatal to the handshake.
	ErrHandshakeTimeout = errors.New("handshake timed out waiting for peer key")

	// ErrMalformedHandshake means the handshake payload was not a 32-byte
	// public key.
	ErrMalformedHandshake = errors.New("malformed handshake payload")

	// ErrAuthenticationFailure means a frame's authentication tag did not
	// verify: tampering or desynchronized keys. Fatal to the session.
	ErrAuthenticationFailure = errors.New("frame authentication failure")

	// ErrOutOfOrderFrame means a frame arrived outside the expected
	// sequence. Duplicates are recovered by re-acknowledging; frames ahead
	// of the expected sequence are fatal.
	ErrOutOfOrderFrame = errors.New("frame out of order")

	// ErrFrameTimeout means an expected acknowledgment or frame did not
	// arrive before the retry budget was exhausted.
	ErrFrameTimeout = errors.New("timed out waiting for frame or acknowledgment")

	// ErrMalformedFrame means a wire payload could not be parsed as a
	// frame or acknowledgment.
	ErrMalformedFrame = errors.New("malformed wire frame")

	// ErrIncompleteTransfer means finalize was called before the final
	// chunk arrived. Indicates a caller bug, not a transport fault.
	ErrIncompleteTransfer = errors.New("transfer incomplete: final chunk not received")

	// ErrSessionState means an operation was attempted in a state that
	// does not permit it.
	ErrSessionState = errors.New("operation not valid in current session state")

	// ErrLinkClosed means the underlying transport link is closed.
	ErrLinkClosed = errors.New("transport link closed")

	// ErrPayloadTooLarge means a write exceeded the link's payload budget.
	ErrPayloadTooLarge = errors.New("payload exceeds transport maximum")
)
