package app

import (
	"beamlink/internal/protocol/session"
	"beamlink/internal/transport"
)

// Config holds runtime wiring options for building a session.
type Config struct {
	// MaxPayload is the per-write payload budget of the link.
	MaxPayload int
	// TextSafe base64-encodes payloads for text-only channels.
	TextSafe bool
	// Session carries the protocol timing and retry knobs.
	Session session.Config
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		MaxPayload: transport.DefaultMaxPayload,
		Session:    session.DefaultConfig(),
	}
}
