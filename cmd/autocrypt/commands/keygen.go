package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autocrypt/internal/domain"
	"autocrypt/internal/services/identity"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen <name>",
		Short: "Generate a long-term key pair and store it in the key directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pass := wire.Config.Passphrase(); pass != "" {
				if err := identity.ValidatePassphrase(pass); err != nil {
					return err
				}
			}
			kp, fp, err := wire.Identity.GenerateIdentity(domain.PartyName(args[0]))
			if err != nil {
				return err
			}
			kp.Wipe()
			fmt.Fprintf(cmd.OutOrStdout(), "Identity created.\nFingerprint: %s\n", fp)
			return nil
		},
	}
}
