package crypto_test

import (
	"bytes"
	"errors"
	"testing"

	"beamlink/internal/crypto"
	"beamlink/internal/domain"
)

func TestSharedSecretAgreement(t *testing.T) {
	alice, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	bob, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	ab, err := crypto.SharedSecret(alice.Private, bob.Public)
	if err != nil {
		t.Fatalf("SharedSecret (alice): %v", err)
	}
	ba, err := crypto.SharedSecret(bob.Private, alice.Public)
	if err != nil {
		t.Fatalf("SharedSecret (bob): %v", err)
	}
	if !bytes.Equal(ab[:], ba[:]) {
		t.Fatal("both sides must derive the same shared secret")
	}
}

func TestGenerateKeyPairFresh(t *testing.T) {
	a, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	b, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	if a.Public == b.Public {
		t.Fatal("two generated keypairs share a public key")
	}
	if a.Private == (domain.PrivateKey{}) {
		t.Fatal("private key is all zero")
	}
}

func TestSharedSecretInvalidPeerKey(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	// The all-zero point is low order; the agreement must refuse it.
	var lowOrder domain.PublicKey
	if _, err := crypto.SharedSecret(kp.Private, lowOrder); !errors.Is(err, domain.ErrInvalidPeerKey) {
		t.Fatalf("want ErrInvalidPeerKey, got %v", err)
	}
}

func TestFingerprintStable(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	fp := crypto.Fingerprint(kp.Public)
	if fp == "" || fp != crypto.Fingerprint(kp.Public) {
		t.Fatalf("fingerprint must be non-empty and deterministic, got %q", fp)
	}
	other, _ := crypto.GenerateKeyPair()
	if fp == crypto.Fingerprint(other.Public) {
		t.Fatal("distinct keys produced the same fingerprint")
	}
}
