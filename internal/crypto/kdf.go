package crypto

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"beamlink/internal/domain"
)

// HKDF parameters. The salt and info label are fixed so that both peers
// derive the identical key from the identical shared secret, and so that
// keys derived here can never collide with another protocol's use of the
// same secret.
var (
	kdfSalt = []byte("beamlink-hkdf-salt-v1")
	kdfInfo = []byte("beamlink/v1 session key")
)

// DeriveSessionKey stretches the raw X25519 shared secret into the
// 32-byte symmetric session key via HKDF-SHA256 (extract with a fixed
// salt, expand with the protocol label). Deterministic for a given
// secret; the secret itself is fresh per session.
func DeriveSessionKey(sharedSecret []byte) domain.SessionKey {
	var key domain.SessionKey
	r := hkdf.New(sha256.New, sharedSecret, kdfSalt, kdfInfo)
	if _, err := io.ReadFull(r, key[:]); err != nil {
		// HKDF-SHA256 cannot fail to produce 32 bytes.
		panic(err)
	}
	return key
}
