package commands

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"autocrypt/internal/crypto"
	"autocrypt/internal/domain"
)

func demoCmd() *cobra.Command {
	var (
		initiator  string
		responder  string
		payloadHex string
		showKeys   bool
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a handshake between two local parties and exchange one message",
		Long: "demo generates missing key pairs for both parties in the key directory, " +
			"runs the signed ECDHE handshake and sends one sealed message from the " +
			"initiator to the responder.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := hex.DecodeString(payloadHex)
			if err != nil {
				return fmt.Errorf("payload: %w", err)
			}
			for _, name := range []string{initiator, responder} {
				if err := ensureIdentity(domain.PartyName(name)); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()

			start, err := wire.Handshakes.Initiate(domain.Party{
				PrivateKeyPath:    initiator + ".key",
				PeerPublicKeyPath: responder + ".pem",
			})
			if err != nil {
				return err
			}
			defer start.Close()
			msg := start.Message()
			fmt.Fprintf(out, "id:         %x\n", msg.ID)
			fmt.Fprintf(out, "ephemeral:  %s\n", crypto.B64(msg.EphemeralPublicKey))
			fmt.Fprintf(out, "signature:  %s\n", crypto.B64(msg.Signature))

			respSession, err := wire.Handshakes.Respond(domain.Party{
				PrivateKeyPath:    responder + ".key",
				PeerPublicKeyPath: initiator + ".pem",
			}, msg)
			if err != nil {
				return err
			}
			defer respSession.Close()
			initSession, err := start.Finish()
			if err != nil {
				return err
			}
			defer initSession.Close()

			if showKeys {
				keys := initSession.Keys()
				fmt.Fprintf(out, "enc_key:    %X\n", keys.EncryptKey)
				fmt.Fprintf(out, "mac_key:    %X\n", keys.MacKey)
				keys.Wipe()
			}

			env, err := wire.Messages.Send(initSession, payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "iv:         %x\n", env.IV)
			fmt.Fprintf(out, "ciphertext: %x\n", env.Ciphertext)
			fmt.Fprintf(out, "tag:        %x\n", env.Tag)

			got, err := wire.Messages.Receive(respSession, env)
			if err != nil {
				return err
			}
			if !bytes.Equal(got, payload) {
				return errors.New("decrypted payload does not match")
			}
			fmt.Fprintf(out, "plaintext:  %x\n", got)
			fmt.Fprintln(out, "OK")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&initiator, "initiator", "keco", "initiating party key name")
	f.StringVar(&responder, "responder", "charger", "responding party key name")
	f.StringVar(&payloadHex, "payload", "0000000000000000", "message to send, hex")
	f.BoolVar(&showKeys, "show-keys", false, "print the derived session keys")
	return cmd
}

// ensureIdentity generates <name>.pem/<name>.key unless the public key exists.
func ensureIdentity(name domain.PartyName) error {
	_, err := os.Stat(filepath.Join(wire.Config.Home, string(name)+".pem"))
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	kp, _, err := wire.Identity.GenerateIdentity(name)
	if err != nil {
		return err
	}
	kp.Wipe()
	return nil
}
