package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"beamlink/internal/crypto"
	"beamlink/internal/domain"
	"beamlink/internal/protocol/frame"
	"beamlink/internal/protocol/handshake"
	"beamlink/internal/transport"
	"beamlink/internal/util/memzero"
)

// Config carries the protocol timing and retry knobs.
type Config struct {
	// HandshakeTimeout bounds the wait for the peer's public key.
	HandshakeTimeout time.Duration
	// AckTimeout bounds the sender's wait for each acknowledgment before
	// retransmitting.
	AckTimeout time.Duration
	// ReceiveTimeout bounds the receiver's wait for the next frame.
	ReceiveTimeout time.Duration
	// MaxRetries is how many times one frame is retransmitted before the
	// session fails.
	MaxRetries int
	// ChunkSize overrides the plaintext chunk size. Zero means the
	// largest chunk that fits the link's payload budget.
	ChunkSize int
}

// DefaultConfig returns the protocol defaults.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 15 * time.Second,
		AckTimeout:       3 * time.Second,
		ReceiveTimeout:   30 * time.Second,
		MaxRetries:       3,
	}
}

// Session is one end of a single-file transfer. It owns its ephemeral
// keys, sequence counters, and reassembly buffer exclusively; nothing
// survives the session. A Session is single-threaded by design
// (stop-and-wait forbids concurrent in-flight frames) and must not be
// shared between goroutines.
type Session struct {
	link transport.Link
	cfg  Config
	log  *logrus.Entry

	state domain.TransferState
	keys  domain.KeyPair
	key   domain.SessionKey
	peer  domain.PublicKey
	ready bool
}

// New creates an idle session over link.
func New(link transport.Link, cfg Config) *Session {
	return &Session{
		link:  link,
		cfg:   cfg,
		log:   logrus.WithField("component", "session"),
		state: domain.StateIdle,
	}
}

// State returns the current transfer state.
func (s *Session) State() domain.TransferState { return s.state }

// PeerFingerprint returns a short fingerprint of the peer's ephemeral
// public key, for out-of-band comparison. Empty before the handshake
// completes.
func (s *Session) PeerFingerprint() string {
	if !s.ready {
		return ""
	}
	return crypto.Fingerprint(s.peer)
}

// Handshake generates a fresh ephemeral keypair, exchanges public keys
// with the peer, and derives the session key. Idle -> ExchangingKeys ->
// Ready, or Failed on any handshake error.
func (s *Session) Handshake(ctx context.Context) error {
	if s.state != domain.StateIdle {
		return fmt.Errorf("%w: handshake in %s", domain.ErrSessionState, s.state)
	}
	s.state = domain.StateExchangingKeys

	keys, err := crypto.GenerateKeyPair()
	if err != nil {
		return s.fail(err)
	}
	s.keys = keys

	peer, err := handshake.Exchange(ctx, s.link, s.keys, s.cfg.HandshakeTimeout)
	if err != nil {
		return s.fail(err)
	}

	secret, err := crypto.SharedSecret(s.keys.Private, peer)
	if err != nil {
		return s.fail(err)
	}
	s.key = crypto.DeriveSessionKey(secret[:])
	memzero.Zero(secret[:])
	// The private key has served its one purpose.
	s.keys.Zero()

	s.peer = peer
	s.ready = true
	s.state = domain.StateReady
	s.log.WithField("peer", crypto.Fingerprint(peer)).Debug("session key established")
	return nil
}

// Send streams r to the peer as a sequence of stop-and-wait frames.
// Ready -> Sending -> Complete, or Failed. A zero-byte stream sends a
// single empty frame marked last.
func (s *Session) Send(ctx context.Context, r io.Reader) error {
	if s.state != domain.StateReady {
		return fmt.Errorf("%w: send in %s", domain.ErrSessionState, s.state)
	}
	s.state = domain.StateSending

	chunkSize := s.chunkSize()
	cur, err := readChunk(r, chunkSize)
	if err != nil && err != io.EOF {
		return s.fail(fmt.Errorf("read input: %w", err))
	}

	var seq uint32
	for {
		next, nerr := readChunk(r, chunkSize)
		if nerr != nil && nerr != io.EOF {
			return s.fail(fmt.Errorf("read input: %w", nerr))
		}
		last := len(next) == 0 && nerr == io.EOF

		if err := s.sendFrame(ctx, seq, last, cur); err != nil {
			return err // sendFrame already failed the session
		}
		if last {
			break
		}
		cur = next
		seq++
	}

	s.complete()
	return nil
}

// Receive accumulates frames from the peer until the final frame is
// acknowledged, then returns the reassembled byte stream. Ready ->
// Receiving -> Complete, or Failed. Any non-Complete outcome means the
// transfer did not succeed and no partial data is returned.
func (s *Session) Receive(ctx context.Context) ([]byte, error) {
	if s.state != domain.StateReady {
		return nil, fmt.Errorf("%w: receive in %s", domain.ErrSessionState, s.state)
	}
	s.state = domain.StateReceiving

	reasm := NewReassembler()
	defer reasm.Reset()

	var expected uint32
	timer := time.NewTimer(s.cfg.ReceiveTimeout)
	defer timer.Stop()

	for {
		var payload []byte
		select {
		case <-ctx.Done():
			return nil, s.fail(ctx.Err())
		case <-timer.C:
			return nil, s.fail(fmt.Errorf("%w: no frame within %s", domain.ErrFrameTimeout, s.cfg.ReceiveTimeout))
		case p, ok := <-s.link.Packets():
			if !ok {
				return nil, s.fail(domain.ErrLinkClosed)
			}
			payload = p
		}

		f, err := frame.Parse(payload)
		if err != nil {
			return nil, s.fail(err)
		}

		switch {
		case f.Seq == expected:
			plaintext, err := frame.Open(s.key, f)
			if err != nil {
				return nil, s.fail(err)
			}
			reasm.Append(f.Seq, plaintext, f.Last)
			if err := s.ack(f.Seq); err != nil {
				return nil, s.fail(err)
			}
			if f.Last {
				data, err := reasm.Finalize()
				if err != nil {
					return nil, s.fail(err)
				}
				s.complete()
				return data, nil
			}
			expected++
		case f.Seq < expected:
			// Duplicate after a lost acknowledgment: drop the payload and
			// re-acknowledge so the sender can advance.
			s.log.WithFields(logrus.Fields{
				"seq":      f.Seq,
				"expected": expected,
			}).Debug("duplicate frame, re-acknowledging")
			if err := s.ack(expected - 1); err != nil {
				return nil, s.fail(err)
			}
		default:
			// A frame ahead of the expected sequence cannot happen under
			// stop-and-wait; the peers have desynchronized.
			return nil, s.fail(fmt.Errorf("%w: got %d, expected %d", domain.ErrOutOfOrderFrame, f.Seq, expected))
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(s.cfg.ReceiveTimeout)
	}
}

// sendFrame transmits one frame and blocks until the matching
// acknowledgment arrives, retransmitting the identical wire bytes on
// timeout up to the retry budget.
func (s *Session) sendFrame(ctx context.Context, seq uint32, last bool, plaintext []byte) error {
	f, err := frame.Seal(s.key, seq, last, plaintext)
	if err != nil {
		return s.fail(err)
	}
	wire := frame.Marshal(f)

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			s.log.WithFields(logrus.Fields{
				"seq":     seq,
				"attempt": attempt,
			}).Debug("retransmitting frame")
		}
		if err := s.link.WritePacket(wire); err != nil {
			return s.fail(fmt.Errorf("write frame %d: %w", seq, err))
		}

		acked, err := s.awaitAck(ctx, seq)
		if err != nil {
			return err // awaitAck already failed the session
		}
		if acked {
			return nil
		}
	}
	return s.fail(fmt.Errorf("%w: frame %d unacknowledged after %d attempts",
		domain.ErrFrameTimeout, seq, s.cfg.MaxRetries+1))
}

// awaitAck waits for the acknowledgment of seq. It returns false on
// timeout (retransmit), ignores stale acknowledgments, and fails the
// session on anything unrecoverable.
func (s *Session) awaitAck(ctx context.Context, seq uint32) (bool, error) {
	timer := time.NewTimer(s.cfg.AckTimeout)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, s.fail(ctx.Err())
		case <-timer.C:
			return false, nil
		case payload, ok := <-s.link.Packets():
			if !ok {
				return false, s.fail(domain.ErrLinkClosed)
			}
			ackSeq, err := frame.ParseAck(payload)
			if err != nil {
				return false, s.fail(err)
			}
			switch {
			case ackSeq == seq:
				return true, nil
			case ackSeq < seq:
				// Stale acknowledgment from a retransmission round; the
				// frame it confirms is already behind us.
				continue
			default:
				return false, s.fail(fmt.Errorf("%w: acknowledgment for %d while %d outstanding",
					domain.ErrOutOfOrderFrame, ackSeq, seq))
			}
		}
	}
}

func (s *Session) ack(seq uint32) error {
	if err := s.link.WritePacket(frame.MarshalAck(seq)); err != nil {
		return fmt.Errorf("write acknowledgment %d: %w", seq, err)
	}
	return nil
}

func (s *Session) chunkSize() int {
	if s.cfg.ChunkSize > 0 {
		return s.cfg.ChunkSize
	}
	return frame.MaxChunk(s.link.MaxPayload())
}

// readChunk reads up to size bytes. It returns io.EOF only once the
// source is exhausted.
func readChunk(r io.Reader, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := io.ReadFull(r, buf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return buf[:n], err
}

// complete moves the session to its successful terminal state and wipes
// the key material.
func (s *Session) complete() {
	s.discardKeys()
	s.state = domain.StateComplete
	s.log.Debug("transfer complete")
}

// fail moves the session to its failed terminal state, wipes the key
// material, and returns err for the caller to surface.
func (s *Session) fail(err error) error {
	if !s.state.Terminal() {
		s.discardKeys()
		s.state = domain.StateFailed
		s.log.WithError(err).Warn("session failed")
	}
	return err
}

func (s *Session) discardKeys() {
	s.keys.Zero()
	s.key.Zero()
}
