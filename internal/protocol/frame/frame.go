package frame

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"beamlink/internal/domain"
)

const (
	// NonceSize is the ChaCha20-Poly1305 nonce length.
	NonceSize = chacha20poly1305.NonceSize
	// TagSize is the Poly1305 authentication tag length.
	TagSize = chacha20poly1305.Overhead
	// headerSize covers the sequence number and flags byte.
	headerSize = 4 + 1
	// Overhead is the fixed per-frame wire cost on top of the plaintext.
	Overhead = headerSize + NonceSize + TagSize
	// AckSize is the wire size of an acknowledgment.
	AckSize = 4

	flagLast = 0x01
)

// noncePrefix fills the 8 nonce bytes ahead of the big-endian sequence
// number. Uniqueness comes from the sequence number alone.
var noncePrefix = [8]byte{'b', 'm', 'l', 'k', '/', 'v', '1', 0}

// Frame is one authenticated, encrypted unit of the transfer protocol.
type Frame struct {
	Seq        uint32
	Last       bool
	Nonce      [NonceSize]byte
	Ciphertext []byte
	Tag        [TagSize]byte
}

// MaxChunk returns the largest plaintext chunk whose frame fits within
// the given transport payload budget.
func MaxChunk(maxPayload int) int {
	return maxPayload - Overhead
}

// Seal encrypts one plaintext chunk into a frame under the session key.
// The nonce is derived from seq; the header is authenticated as
// associated data.
func Seal(key domain.SessionKey, seq uint32, last bool, plaintext []byte) (Frame, error) {
	aead, err := chacha20poly1305.New(key.Slice())
	if err != nil {
		return Frame{}, fmt.Errorf("init cipher: %w", err)
	}
	f := Frame{Seq: seq, Last: last, Nonce: nonceFor(seq)}
	hdr := header(seq, last)
	sealed := aead.Seal(nil, f.Nonce[:], plaintext, hdr[:])
	f.Ciphertext = sealed[:len(plaintext)]
	copy(f.Tag[:], sealed[len(plaintext):])
	return f, nil
}

// Open decrypts a frame under the session key. It is all-or-nothing: on
// any tag mismatch it returns domain.ErrAuthenticationFailure and no
// plaintext.
func Open(key domain.SessionKey, f Frame) ([]byte, error) {
	aead, err := chacha20poly1305.New(key.Slice())
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	sealed := make([]byte, 0, len(f.Ciphertext)+TagSize)
	sealed = append(sealed, f.Ciphertext...)
	sealed = append(sealed, f.Tag[:]...)
	hdr := header(f.Seq, f.Last)
	plaintext, err := aead.Open(nil, f.Nonce[:], sealed, hdr[:])
	if err != nil {
		return nil, domain.ErrAuthenticationFailure
	}
	return plaintext, nil
}

// Marshal serializes a frame into a wire payload.
func Marshal(f Frame) []byte {
	out := make([]byte, 0, Overhead+len(f.Ciphertext))
	hdr := header(f.Seq, f.Last)
	out = append(out, hdr[:]...)
	out = append(out, f.Nonce[:]...)
	out = append(out, f.Ciphertext...)
	out = append(out, f.Tag[:]...)
	return out
}

// Parse deserializes a wire payload into a frame.
func Parse(b []byte) (Frame, error) {
	if len(b) < Overhead {
		return Frame{}, fmt.Errorf("%w: %d bytes", domain.ErrMalformedFrame, len(b))
	}
	var f Frame
	f.Seq = binary.BigEndian.Uint32(b[:4])
	flags := b[4]
	if flags&^flagLast != 0 {
		return Frame{}, fmt.Errorf("%w: unknown flags %#x", domain.ErrMalformedFrame, flags)
	}
	f.Last = flags&flagLast != 0
	copy(f.Nonce[:], b[headerSize:headerSize+NonceSize])
	body := b[headerSize+NonceSize:]
	f.Ciphertext = append([]byte(nil), body[:len(body)-TagSize]...)
	copy(f.Tag[:], body[len(body)-TagSize:])
	return f, nil
}

// MarshalAck serializes an acknowledgment for seq.
func MarshalAck(seq uint32) []byte {
	out := make([]byte, AckSize)
	binary.BigEndian.PutUint32(out, seq)
	return out
}

// ParseAck deserializes an acknowledgment payload.
func ParseAck(b []byte) (uint32, error) {
	if len(b) != AckSize {
		return 0, fmt.Errorf("%w: ack of %d bytes", domain.ErrMalformedFrame, len(b))
	}
	return binary.BigEndian.Uint32(b), nil
}

func nonceFor(seq uint32) (n [NonceSize]byte) {
	copy(n[:], noncePrefix[:])
	binary.BigEndian.PutUint32(n[NonceSize-4:], seq)
	return n
}

func header(seq uint32, last bool) (h [headerSize]byte) {
	binary.BigEndian.PutUint32(h[:4], seq)
	if last {
		h[4] = flagLast
	}
	return h
}
