package domain

// TransferState is the lifecycle state of a transfer session.
// Complete and Failed are terminal; a session never leaves them.
type TransferState uint8

const (
	// StateIdle means the session has been created but not started.
	StateIdle TransferState = iota
	// StateExchangingKeys means the public key exchange is in flight.
	StateExchangingKeys
	// StateReady means the session key is derived and transfer may begin.
	StateReady
	// StateSending means the session is streaming frames to the peer.
	StateSending
	// StateReceiving means the session is accumulating frames from the peer.
	StateReceiving
	// StateComplete means the transfer finished and was acknowledged.
	StateComplete
	// StateFailed means the session hit an unrecoverable error.
	StateFailed
)

func (s TransferState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExchangingKeys:
		return "exchanging_keys"
	case StateReady:
		return "ready"
	case StateSending:
		return "sending"
	case StateReceiving:
		return "receiving"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s TransferState) Terminal() bool {
	return s == StateComplete || s == StateFailed
}
