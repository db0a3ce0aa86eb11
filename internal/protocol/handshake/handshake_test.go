package handshake_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"beamlink/internal/crypto"
	"beamlink/internal/domain"
	"beamlink/internal/protocol/handshake"
	"beamlink/internal/transport"
)

func makeKeys(t *testing.T) domain.KeyPair {
	t.Helper()
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	return kp
}

func TestExchangeBothSides(t *testing.T) {
	a, b := transport.Pipe(transport.DefaultMaxPayload)
	defer a.Close()

	alice := makeKeys(t)
	bob := makeKeys(t)

	type result struct {
		peer domain.PublicKey
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		peer, err := handshake.Exchange(context.Background(), b, bob, time.Second)
		ch <- result{peer, err}
	}()

	peerOfAlice, err := handshake.Exchange(context.Background(), a, alice, time.Second)
	if err != nil {
		t.Fatalf("Exchange (alice): %v", err)
	}
	res := <-ch
	if res.err != nil {
		t.Fatalf("Exchange (bob): %v", res.err)
	}
	if peerOfAlice != bob.Public {
		t.Fatal("alice did not receive bob's public key")
	}
	if res.peer != alice.Public {
		t.Fatal("bob did not receive alice's public key")
	}
}

// The transport pairs nothing: the peer's key may already be waiting
// before we write ours, or arrive long after. Both orders must work.
func TestExchangeToleratesEitherOrder(t *testing.T) {
	t.Run("peer key arrives first", func(t *testing.T) {
		a, b := transport.Pipe(transport.DefaultMaxPayload)
		defer a.Close()
		alice := makeKeys(t)
		bob := makeKeys(t)

		if err := b.WriteHandshake(context.Background(), bob.Public.Slice()); err != nil {
			t.Fatalf("WriteHandshake: %v", err)
		}
		peer, err := handshake.Exchange(context.Background(), a, alice, time.Second)
		if err != nil {
			t.Fatalf("Exchange: %v", err)
		}
		if peer != bob.Public {
			t.Fatal("wrong peer key")
		}
	})

	t.Run("peer key arrives late", func(t *testing.T) {
		a, b := transport.Pipe(transport.DefaultMaxPayload)
		defer a.Close()
		alice := makeKeys(t)
		bob := makeKeys(t)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = b.WriteHandshake(context.Background(), bob.Public.Slice())
		}()
		peer, err := handshake.Exchange(context.Background(), a, alice, time.Second)
		if err != nil {
			t.Fatalf("Exchange: %v", err)
		}
		if peer != bob.Public {
			t.Fatal("wrong peer key")
		}
	})
}

func TestExchangeTimeout(t *testing.T) {
	a, _ := transport.Pipe(transport.DefaultMaxPayload)
	defer a.Close()

	_, err := handshake.Exchange(context.Background(), a, makeKeys(t), 50*time.Millisecond)
	if !errors.Is(err, domain.ErrHandshakeTimeout) {
		t.Fatalf("want ErrHandshakeTimeout, got %v", err)
	}
}

func TestExchangeRejectsMalformedKey(t *testing.T) {
	a, b := transport.Pipe(transport.DefaultMaxPayload)
	defer a.Close()

	if err := b.WriteHandshake(context.Background(), []byte("not a key")); err != nil {
		t.Fatalf("WriteHandshake: %v", err)
	}
	_, err := handshake.Exchange(context.Background(), a, makeKeys(t), time.Second)
	if !errors.Is(err, domain.ErrMalformedHandshake) {
		t.Fatalf("want ErrMalformedHandshake, got %v", err)
	}
}
