package transport_test

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"beamlink/internal/transport"
)

func tcpPair(t *testing.T, opts ...transport.TCPOption) (*transport.TCPLink, *transport.TCPLink) {
	t.Helper()
	ca, cb := net.Pipe()
	a := transport.NewTCP(ca, opts...)
	b := transport.NewTCP(cb, opts...)
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})
	return a, b
}

func TestTCPLinkRoundTrip(t *testing.T) {
	a, b := tcpPair(t)

	go func() {
		_ = a.WriteHandshake(context.Background(), []byte("pubkey"))
	}()
	got, err := b.ReadHandshake(context.Background())
	if err != nil {
		t.Fatalf("ReadHandshake: %v", err)
	}
	if !bytes.Equal(got, []byte("pubkey")) {
		t.Fatalf("handshake payload %q", got)
	}

	payload := bytes.Repeat([]byte{0xd7}, transport.DefaultMaxPayload)
	go func() {
		_ = a.WritePacket(payload)
	}()
	select {
	case p := <-b.Packets():
		if !bytes.Equal(p, payload) {
			t.Fatal("transfer payload corrupted")
		}
	case <-time.After(time.Second):
		t.Fatal("transfer payload never arrived")
	}
}

func TestTCPLinkTextSafeMode(t *testing.T) {
	a, b := tcpPair(t, transport.WithTextSafe())

	payload := []byte{0x00, 0xff, 0x80, 0x7f} // not text-safe on its own
	go func() {
		_ = a.WritePacket(payload)
	}()
	select {
	case p := <-b.Packets():
		if !bytes.Equal(p, payload) {
			t.Fatalf("got % x, want % x", p, payload)
		}
	case <-time.After(time.Second):
		t.Fatal("transfer payload never arrived")
	}
}

func TestTCPLinkCloseClosesPacketsChannel(t *testing.T) {
	a, b := tcpPair(t)

	a.Close()
	select {
	case _, ok := <-b.Packets():
		if ok {
			t.Fatal("unexpected payload after peer close")
		}
	case <-time.After(time.Second):
		t.Fatal("packets channel never closed after peer disconnect")
	}
}

func TestTCPLinkTextSafeBudget(t *testing.T) {
	a, b := tcpPair(t, transport.WithTextSafe())

	// The 180-byte channel budget bounds the base64 encoding, so the
	// usable payload shrinks to three quarters of it.
	want := transport.DefaultMaxPayload / 4 * 3
	if got := a.MaxPayload(); got != want {
		t.Fatalf("MaxPayload() = %d, want %d", got, want)
	}
	if err := a.WritePacket(make([]byte, want+1)); err == nil {
		t.Fatal("payload over the text-safe budget must be rejected")
	}

	payload := bytes.Repeat([]byte{0x3c}, want)
	go func() {
		_ = a.WritePacket(payload)
	}()
	select {
	case p := <-b.Packets():
		if !bytes.Equal(p, payload) {
			t.Fatal("full text-safe payload corrupted")
		}
	case <-time.After(time.Second):
		t.Fatal("full text-safe payload never arrived")
	}
}

func TestTCPLinkReadHandshakeHonorsContext(t *testing.T) {
	a, _ := tcpPair(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := a.ReadHandshake(ctx); err == nil {
		t.Fatal("expected a context error when no handshake arrives")
	}
}
