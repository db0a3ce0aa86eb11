package handshake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"beamlink/internal/domain"
	"beamlink/internal/transport"
)

// Exchange writes our public key and reads the peer's, concurrently, and
// returns once both have completed. It fails with
// domain.ErrHandshakeTimeout if the peer's key does not arrive within
// timeout, and domain.ErrMalformedHandshake if the peer payload is not a
// 32-byte public key.
func Exchange(ctx context.Context, link transport.Link, local domain.KeyPair, timeout time.Duration) (domain.PublicKey, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// The peer may read before or after writing its own key; sending from
	// a separate goroutine keeps us receptive in both orders.
	wrote := make(chan error, 1)
	go func() {
		wrote <- link.WriteHandshake(ctx, local.Public.Slice())
	}()

	payload, err := link.ReadHandshake(ctx)
	if err != nil {
		return domain.PublicKey{}, readErr(err)
	}
	if len(payload) != len(domain.PublicKey{}) {
		return domain.PublicKey{}, fmt.Errorf("%w: %d bytes", domain.ErrMalformedHandshake, len(payload))
	}

	if err := <-wrote; err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.PublicKey{}, domain.ErrHandshakeTimeout
		}
		return domain.PublicKey{}, fmt.Errorf("write handshake key: %w", err)
	}

	peer := domain.MustPublicKey(payload)
	logrus.WithFields(logrus.Fields{
		"peer_key_len": len(payload),
	}).Debug("handshake keys exchanged")
	return peer, nil
}

func readErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrHandshakeTimeout
	}
	return fmt.Errorf("read handshake key: %w", err)
}
