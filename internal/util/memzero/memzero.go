// Package memzero wipes session secrets. Every key a session owns (the
// ephemeral private key, the raw shared secret, the derived session
// key) passes through Zero when the session reaches a terminal state.
package memzero

import "crypto/subtle"

// Zero overwrites b with zeros. ConstantTimeCopy keeps the write from
// being elided as dead by the compiler.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
