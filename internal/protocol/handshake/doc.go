// Package handshake performs the two-message public key exchange that
// opens a session: each peer writes its ephemeral X25519 public key to
// the handshake channel and reads the peer's. The transport does not
// pair the two messages, so the exchange tolerates either arrival order
// and only proceeds once both halves have completed.
package handshake
