package session

import (
	"bytes"
	"errors"
	"testing"

	"beamlink/internal/domain"
)

func TestReassemblerConcatenatesInOrder(t *testing.T) {
	r := NewReassembler()
	r.Append(0, []byte("abc"), false)
	r.Append(1, []byte("def"), false)
	r.Append(2, []byte("g"), true)

	out, err := r.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !bytes.Equal(out, []byte("abcdefg")) {
		t.Fatalf("got %q, want %q", out, "abcdefg")
	}
}

func TestReassemblerPrematureFinalize(t *testing.T) {
	r := NewReassembler()
	r.Append(0, []byte("partial"), false)
	if _, err := r.Finalize(); !errors.Is(err, domain.ErrIncompleteTransfer) {
		t.Fatalf("want ErrIncompleteTransfer, got %v", err)
	}
}

func TestReassemblerEmptyFinalChunk(t *testing.T) {
	r := NewReassembler()
	r.Append(0, nil, true)
	out, err := r.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("want empty stream, got %d bytes", len(out))
	}
}

func TestReassemblerReset(t *testing.T) {
	r := NewReassembler()
	r.Append(0, []byte("x"), true)
	r.Reset()
	if _, err := r.Finalize(); !errors.Is(err, domain.ErrIncompleteTransfer) {
		t.Fatalf("after reset: want ErrIncompleteTransfer, got %v", err)
	}
}
