package app

import (
	"context"
	"fmt"
	"net"

	"beamlink/internal/protocol/session"
	"beamlink/internal/transport"
)

// Dial connects to a listening peer and returns a session over the
// resulting link. The caller closes the link when done.
func Dial(ctx context.Context, cfg Config, addr string) (*session.Session, transport.Link, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	link := newLink(conn, cfg)
	return session.New(link, cfg.Session), link, nil
}

// Listen waits for exactly one inbound peer connection and returns a
// session over the resulting link. The listener is closed once the peer
// connects; the caller closes the link when done.
func Listen(ctx context.Context, cfg Config, addr string) (*session.Session, transport.Link, error) {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	defer ln.Close()

	type accepted struct {
		conn net.Conn
		err  error
	}
	ch := make(chan accepted, 1)
	go func() {
		conn, err := ln.Accept()
		ch <- accepted{conn, err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if a := <-ch; a.conn != nil {
				a.conn.Close()
			}
		}()
		return nil, nil, ctx.Err()
	case a := <-ch:
		if a.err != nil {
			return nil, nil, fmt.Errorf("accept on %s: %w", addr, a.err)
		}
		link := newLink(a.conn, cfg)
		return session.New(link, cfg.Session), link, nil
	}
}

func newLink(conn net.Conn, cfg Config) transport.Link {
	opts := []transport.TCPOption{transport.WithMaxPayload(cfg.MaxPayload)}
	if cfg.TextSafe {
		opts = append(opts, transport.WithTextSafe())
	}
	return transport.NewTCP(conn, opts...)
}
