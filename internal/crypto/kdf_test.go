package crypto_test

import (
	"bytes"
	"testing"

	"beamlink/internal/crypto"
)

func TestDeriveSessionKeyDeterministic(t *testing.T) {
	secret := bytes.Repeat([]byte{0x42}, 32)
	k1 := crypto.DeriveSessionKey(secret)
	k2 := crypto.DeriveSessionKey(secret)
	if k1 != k2 {
		t.Fatal("same secret must derive the same session key")
	}
	if len(k1.Slice()) != 32 {
		t.Fatalf("want 32-byte key, got %d", len(k1.Slice()))
	}
}

func TestDeriveSessionKeyDiverges(t *testing.T) {
	a := crypto.DeriveSessionKey(bytes.Repeat([]byte{0x01}, 32))
	b := crypto.DeriveSessionKey(bytes.Repeat([]byte{0x02}, 32))
	if a == b {
		t.Fatal("different secrets derived the same session key")
	}
}

func TestDeriveSessionKeyNotRawSecret(t *testing.T) {
	secret := bytes.Repeat([]byte{0x42}, 32)
	key := crypto.DeriveSessionKey(secret)
	if bytes.Equal(key.Slice(), secret) {
		t.Fatal("session key must not be the raw shared secret")
	}
}

func TestSessionKeysMatchAcrossPeers(t *testing.T) {
	alice, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	bob, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	sa, err := crypto.SharedSecret(alice.Private, bob.Public)
	if err != nil {
		t.Fatalf("SharedSecret: %v", err)
	}
	sb, err := crypto.SharedSecret(bob.Private, alice.Public)
	if err != nil {
		t.Fatalf("SharedSecret: %v", err)
	}
	if crypto.DeriveSessionKey(sa[:]) != crypto.DeriveSessionKey(sb[:]) {
		t.Fatal("peers derived different session keys from the same exchange")
	}
}
