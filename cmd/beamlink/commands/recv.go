package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// recv <output>: receive a file from the peer.
func recvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recv <output>",
		Short: "Receive a file from the peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			sess, link, err := connect(ctx)
			if err != nil {
				return err
			}
			defer link.Close()

			data, err := sess.Receive(ctx)
			if err != nil {
				return fmt.Errorf("transfer failed: %w", err)
			}
			if err := writeAtomic(args[0], data); err != nil {
				return err
			}
			fmt.Printf("received %d bytes -> %s\n", len(data), args[0])
			return nil
		},
	}
}

// writeAtomic writes via a temp file then rename, so a failed transfer
// never leaves a partial output that looks valid.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".beamlink-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
