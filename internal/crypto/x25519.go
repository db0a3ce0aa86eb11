package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/curve25519"

	"beamlink/internal/domain"
)

// GenerateKeyPair returns a fresh Curve25519 key pair.
// The private key is clamped per RFC 7748.
func GenerateKeyPair() (domain.KeyPair, error) {
	var kp domain.KeyPair
	if _, err := rand.Read(kp.Private[:]); err != nil {
		return domain.KeyPair{}, fmt.Errorf("generate ephemeral key: %w", err)
	}
	clamp(&kp.Private)
	pub, err := curve25519.X25519(kp.Private.Slice(), curve25519.Basepoint)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("derive public key: %w", err)
	}
	copy(kp.Public[:], pub)
	return kp, nil
}

// SharedSecret computes the X25519 agreement between our private key and
// the peer's public key. A low-order or otherwise invalid peer point
// fails with domain.ErrInvalidPeerKey.
func SharedSecret(priv domain.PrivateKey, peer domain.PublicKey) ([32]byte, error) {
	var out [32]byte
	secret, err := curve25519.X25519(priv.Slice(), peer.Slice())
	if err != nil {
		return out, fmt.Errorf("%w: %v", domain.ErrInvalidPeerKey, err)
	}
	copy(out[:], secret)
	return out, nil
}

// Fingerprint returns a short fingerprint of the public key, for
// out-of-band comparison between the two peers.
func Fingerprint(pub domain.PublicKey) string {
	sum := sha256.Sum256(pub[:])
	return hex.EncodeToString(sum[:10])
}

func clamp(k *domain.PrivateKey) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}
