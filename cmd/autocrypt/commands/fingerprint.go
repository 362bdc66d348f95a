package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func fingerprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fingerprint [pem]",
		Short: "Print the fingerprint of a public key or certificate",
		Long:  "fingerprint prints the fingerprint of the given file, or of [keys].public from the config.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := wire.Config.Keys.Public
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no public key given and [keys].public is not set")
			}
			fp, err := wire.Identity.FingerprintPublicKey(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", fp)
			return nil
		},
	}
	return cmd
}
