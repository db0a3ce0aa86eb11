package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// send <file>: stream a file to the peer.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <file>",
		Short: "Send a file to the peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			sess, link, err := connect(ctx)
			if err != nil {
				return err
			}
			defer link.Close()

			if err := sess.Send(ctx, f); err != nil {
				return fmt.Errorf("transfer failed: %w", err)
			}
			fmt.Println("sent")
			return nil
		},
	}
}
