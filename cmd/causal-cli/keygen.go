package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sage-x-project/causalproof/crypto/keys"
	"github.com/spf13/cobra"
)

var keygenOutputFile string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new secp256k1 key pair",
	Long: `Generate a new secp256k1 private/public key pair for signing and
verifying causal proofs.

Example:
  causal-cli keygen
  causal-cli keygen --output agent.json`,
	RunE: runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringVarP(&keygenOutputFile, "output", "o", "", "Output file (default: stdout)")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	kp, err := keys.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("failed to generate key pair: %w", err)
	}

	result := map[string]string{
		"privateKeyHex": keys.EncodePrivateKey(kp.D),
		"publicKeyHex":  keys.EncodePublicKey(kp.X, kp.Y),
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal key pair: %w", err)
	}

	if keygenOutputFile == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(keygenOutputFile, out, 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	fmt.Printf("Key pair saved to: %s\n", keygenOutputFile)
	return nil
}
