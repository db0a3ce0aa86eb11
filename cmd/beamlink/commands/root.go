package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"beamlink/internal/app"
	"beamlink/internal/protocol/session"
	"beamlink/internal/transport"
)

var (
	addr       string
	listen     bool
	maxPayload int
	textSafe   bool
	verbose    bool

	cfg app.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:   "beamlink",
		Short: "Encrypted single-file transfer between two peers",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
			cfg = app.Default()
			cfg.MaxPayload = maxPayload
			cfg.TextSafe = textSafe
			return nil
		},
	}

	root.PersistentFlags().StringVar(&addr, "addr", "127.0.0.1:7631", "peer address to connect to or listen on")
	root.PersistentFlags().BoolVar(&listen, "listen", false, "wait for the peer to connect instead of dialing")
	root.PersistentFlags().IntVar(&maxPayload, "max-payload", transport.DefaultMaxPayload, "per-write payload budget in bytes")
	root.PersistentFlags().BoolVar(&textSafe, "text-safe", false, "base64-encode payloads for text-only channels")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(sendCmd(), recvCmd(), fingerprintCmd())
	return root.Execute()
}

// connect builds the link and runs the handshake, printing the peer
// fingerprint for out-of-band verification.
func connect(ctx context.Context) (*session.Session, transport.Link, error) {
	var (
		sess *session.Session
		link transport.Link
		err  error
	)
	if listen {
		sess, link, err = app.Listen(ctx, cfg, addr)
	} else {
		sess, link, err = app.Dial(ctx, cfg, addr)
	}
	if err != nil {
		return nil, nil, err
	}
	if err := sess.Handshake(ctx); err != nil {
		link.Close()
		return nil, nil, fmt.Errorf("handshake: %w", err)
	}
	fmt.Fprintf(os.Stderr, "peer fingerprint: %s (verify out of band)\n", sess.PeerFingerprint())
	return sess, link, nil
}

// signalContext cancels on SIGINT/SIGTERM so a disconnect mid-transfer
// tears the session down instead of hanging.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
