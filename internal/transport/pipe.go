package transport

import (
	"context"
	"fmt"
	"sync"

	"beamlink/internal/domain"
)

// pipeBuffer bounds how many undelivered transfer payloads one direction
// of a pipe can hold.
const pipeBuffer = 64

// PipeEnd is one endpoint of an in-memory link pair. It implements Link
// and exists for tests and simulations: a Tap hook on the transfer
// channel allows dropping or corrupting payloads in flight.
type PipeEnd struct {
	maxPayload int
	handshake  chan []byte
	packets    chan []byte
	peer       *PipeEnd
	done       chan struct{} // shared with peer
	closeOnce  *sync.Once    // shared with peer

	mu  sync.Mutex
	tap func([]byte) []byte

	// sendMu guards sends into this end's packets channel so Close can
	// wait out in-flight writers before closing it.
	sendMu sync.RWMutex
}

// Pipe returns two connected link endpoints with the given payload
// budget. Closing either end closes both.
func Pipe(maxPayload int) (*PipeEnd, *PipeEnd) {
	done := make(chan struct{})
	once := &sync.Once{}
	a := &PipeEnd{
		maxPayload: maxPayload,
		handshake:  make(chan []byte, 1),
		packets:    make(chan []byte, pipeBuffer),
		done:       done,
		closeOnce:  once,
	}
	b := &PipeEnd{
		maxPayload: maxPayload,
		handshake:  make(chan []byte, 1),
		packets:    make(chan []byte, pipeBuffer),
		done:       done,
		closeOnce:  once,
	}
	a.peer, b.peer = b, a
	return a, b
}

// SetTap installs a hook on outbound transfer writes. The hook receives
// a copy of the payload and returns what should be delivered; returning
// nil drops the payload.
func (p *PipeEnd) SetTap(tap func([]byte) []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tap = tap
}

func (p *PipeEnd) WriteHandshake(ctx context.Context, payload []byte) error {
	if len(payload) > p.maxPayload {
		return fmt.Errorf("%w: %d > %d", domain.ErrPayloadTooLarge, len(payload), p.maxPayload)
	}
	select {
	case p.peer.handshake <- clone(payload):
		return nil
	case <-p.done:
		return domain.ErrLinkClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *PipeEnd) ReadHandshake(ctx context.Context) ([]byte, error) {
	select {
	case payload := <-p.handshake:
		return payload, nil
	case <-p.done:
		return nil, domain.ErrLinkClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *PipeEnd) WritePacket(payload []byte) error {
	if len(payload) > p.maxPayload {
		return fmt.Errorf("%w: %d > %d", domain.ErrPayloadTooLarge, len(payload), p.maxPayload)
	}
	out := clone(payload)
	p.mu.Lock()
	tap := p.tap
	p.mu.Unlock()
	if tap != nil {
		out = tap(out)
		if out == nil {
			return nil // dropped in flight
		}
	}
	p.peer.sendMu.RLock()
	defer p.peer.sendMu.RUnlock()
	select {
	case <-p.done:
		return domain.ErrLinkClosed
	default:
	}
	select {
	case p.peer.packets <- out:
		return nil
	case <-p.done:
		return domain.ErrLinkClosed
	}
}

func (p *PipeEnd) Packets() <-chan []byte { return p.packets }

func (p *PipeEnd) MaxPayload() int { return p.maxPayload }

// Close tears down both ends of the pipe. The packets channels are
// closed so a blocked receiver observes the disconnect immediately;
// closing done first flushes out any in-flight writers.
func (p *PipeEnd) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		for _, end := range []*PipeEnd{p, p.peer} {
			end.sendMu.Lock()
			close(end.packets)
			end.sendMu.Unlock()
		}
	})
	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
