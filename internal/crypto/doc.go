// Package crypto implements the primitives of the beamlink session
// protocol: ephemeral X25519 key agreement and HKDF session-key
// derivation. All key material produced here is session-scoped; callers
// own it exclusively and wipe it on teardown.
package crypto
