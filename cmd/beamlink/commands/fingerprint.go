package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"beamlink/internal/crypto"
	"beamlink/internal/domain"
)

// fingerprint <base64-pubkey>: recompute a peer key fingerprint, so a
// key captured from a verbose log can be compared out of band.
func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <base64-pubkey>",
		Short: "Print the fingerprint of a peer public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := base64.StdEncoding.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decode key: %w", err)
			}
			if len(raw) != 32 {
				return fmt.Errorf("%w: %d bytes", domain.ErrMalformedHandshake, len(raw))
			}
			fmt.Println(crypto.Fingerprint(domain.MustPublicKey(raw)))
			return nil
		},
	}
}
