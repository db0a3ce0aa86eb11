package domain

import (
	"fmt"

	"beamlink/internal/util/memzero"
)

// PublicKey is a Curve25519 public key.
type PublicKey [32]byte

func (p PublicKey) Slice() []byte { return p[:] }

// PrivateKey is a Curve25519 private key.
type PrivateKey [32]byte

func (k PrivateKey) Slice() []byte { return k[:] }

// Zero wipes the private key in place.
func (k *PrivateKey) Zero() { memzero.Zero(k[:]) }

// SessionKey is the 32-byte symmetric key derived once per session.
type SessionKey [32]byte

func (k SessionKey) Slice() []byte { return k[:] }

// Zero wipes the session key in place.
func (k *SessionKey) Zero() { memzero.Zero(k[:]) }

// KeyPair is the ephemeral keypair generated fresh at session start and
// discarded when the session ends. It is never persisted or reused.
type KeyPair struct {
	Public  PublicKey
	Private PrivateKey
}

// Zero wipes the private half. The public half is not secret.
func (kp *KeyPair) Zero() { kp.Private.Zero() }

func MustPublicKey(b []byte) PublicKey {
	if len(b) != 32 {
		panic(fmt.Errorf("public key: want 32 bytes, got %d", len(b)))
	}
	var out PublicKey
	copy(out[:], b)
	return out
}
