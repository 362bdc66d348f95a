package commands

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"autocrypt/internal/protocol/kdf"
	"autocrypt/internal/util/memzero"
)

func kdfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kdf <hex-z>",
		Short: "Derive the encryption and MAC keys from a shared secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("shared secret: %w", err)
			}
			if len(z) == 0 {
				return fmt.Errorf("shared secret: empty")
			}
			defer memzero.Zero(z)

			keys := kdf.DeriveSessionKeys(z)
			defer keys.Wipe()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "enc_key: %s\n", strings.ToUpper(hex.EncodeToString(keys.EncryptKey)))
			fmt.Fprintf(out, "mac_key: %s\n", strings.ToUpper(hex.EncodeToString(keys.MacKey)))
			return nil
		},
	}
}
