package transport

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"beamlink/internal/domain"
)

// Channel tags on the TCP framing. Each message on the wire is
// [tag: 1 byte][length: 2 bytes BE][payload].
const (
	tagHandshake = 0x01
	tagTransfer  = 0x02
)

// TCPOption configures a TCPLink.
type TCPOption func(*TCPLink)

// WithMaxPayload overrides the per-write payload budget.
func WithMaxPayload(n int) TCPOption {
	return func(l *TCPLink) { l.maxPayload = n }
}

// WithTextSafe base64-encodes payloads on the wire, for parity with
// transports that only carry text-safe bytes.
func WithTextSafe() TCPOption {
	return func(l *TCPLink) { l.textSafe = true }
}

// TCPLink adapts a net.Conn into a Link by multiplexing the handshake
// and transfer channels over tagged, length-prefixed messages. It stands
// in for the radio link so the CLI can run end to end.
type TCPLink struct {
	conn       net.Conn
	maxPayload int
	textSafe   bool

	handshake chan []byte
	packets   chan []byte
	done      chan struct{}
	closeOnce sync.Once

	wmu sync.Mutex
}

var _ Link = (*TCPLink)(nil)

// NewTCP wraps conn and starts the inbound read loop.
func NewTCP(conn net.Conn, opts ...TCPOption) *TCPLink {
	l := &TCPLink{
		conn:       conn,
		maxPayload: DefaultMaxPayload,
		handshake:  make(chan []byte, 1),
		packets:    make(chan []byte, pipeBuffer),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	go l.readLoop()
	return l
}

func (l *TCPLink) WriteHandshake(ctx context.Context, payload []byte) error {
	return l.write(ctx, tagHandshake, payload)
}

func (l *TCPLink) ReadHandshake(ctx context.Context) ([]byte, error) {
	select {
	case payload := <-l.handshake:
		return payload, nil
	case <-l.done:
		return nil, domain.ErrLinkClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *TCPLink) WritePacket(payload []byte) error {
	return l.write(context.Background(), tagTransfer, payload)
}

func (l *TCPLink) Packets() <-chan []byte { return l.packets }

// MaxPayload is the largest payload a single write accepts. In
// text-safe mode the channel budget applies to the base64 encoding, so
// the usable payload shrinks to three quarters of it.
func (l *TCPLink) MaxPayload() int {
	if l.textSafe {
		return l.maxPayload / 4 * 3
	}
	return l.maxPayload
}

// Close shuts the connection down; pending reads and writes fail.
func (l *TCPLink) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.conn.Close()
	})
	return err
}

func (l *TCPLink) write(ctx context.Context, tag byte, payload []byte) error {
	if len(payload) > l.MaxPayload() {
		return fmt.Errorf("%w: %d > %d", domain.ErrPayloadTooLarge, len(payload), l.MaxPayload())
	}
	select {
	case <-l.done:
		return domain.ErrLinkClosed
	default:
	}
	wire := payload
	if l.textSafe {
		// The channel budget bounds the bytes actually written.
		wire = []byte(base64.StdEncoding.EncodeToString(payload))
		if len(wire) > l.maxPayload {
			return fmt.Errorf("%w: %d encoded > %d", domain.ErrPayloadTooLarge, len(wire), l.maxPayload)
		}
	}
	msg := make([]byte, 0, 3+len(wire))
	msg = append(msg, tag, byte(len(wire)>>8), byte(len(wire)))
	msg = append(msg, wire...)

	l.wmu.Lock()
	defer l.wmu.Unlock()
	if deadline, ok := ctx.Deadline(); ok {
		_ = l.conn.SetWriteDeadline(deadline)
		defer l.conn.SetWriteDeadline(noDeadline)
	}
	if _, err := l.conn.Write(msg); err != nil {
		return fmt.Errorf("link write: %w", err)
	}
	return nil
}

// readLoop is the only writer into the handshake and packets channels;
// it closes packets on exit so a blocked session observes the
// disconnect immediately instead of waiting out a timeout.
func (l *TCPLink) readLoop() {
	defer close(l.packets)
	defer l.Close()
	var hdr [3]byte
	for {
		if _, err := io.ReadFull(l.conn, hdr[:]); err != nil {
			if err != io.EOF {
				logrus.WithError(err).Debug("link read loop ended")
			}
			return
		}
		size := int(binary.BigEndian.Uint16(hdr[1:]))
		payload := make([]byte, size)
		if _, err := io.ReadFull(l.conn, payload); err != nil {
			logrus.WithError(err).Debug("link read loop ended")
			return
		}
		if l.textSafe {
			decoded, err := base64.StdEncoding.DecodeString(string(payload))
			if err != nil {
				logrus.WithError(err).Warn("dropping non-base64 payload")
				continue
			}
			payload = decoded
		}
		switch hdr[0] {
		case tagHandshake:
			select {
			case l.handshake <- payload:
			case <-l.done:
				return
			}
		case tagTransfer:
			select {
			case l.packets <- payload:
			case <-l.done:
				return
			}
		default:
			logrus.WithField("tag", hdr[0]).Warn("dropping payload with unknown channel tag")
		}
	}
}

var noDeadline = time.Time{}
