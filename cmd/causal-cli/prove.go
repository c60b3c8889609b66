package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sage-x-project/causalproof/codec"
	"github.com/sage-x-project/causalproof/crypto/keys"
	"github.com/sage-x-project/causalproof/model"
	"github.com/sage-x-project/causalproof/proof"
	"github.com/spf13/cobra"
)

var (
	proveStore      string
	proveAgentID    string
	proveTarget     string
	proveDepth      int
	provePrivateKey string
	proveOutputFile string
	proveRaw        bool
)

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Generate one or more causal behavioral proofs",
	Long: `Generate a cryptographic proof that the agent's event log produced
the target event and the causal chain that reached it, signed with the
agent's private key. --target accepts a comma-separated list to produce
a batch of proofs in one call (spec's batch form of generate).

Example:
  causal-cli prove --store events.jsonl --agent agent-1 \
    --target <causalEventId> --private-key <hex>

  causal-cli prove --store events.jsonl --agent agent-1 \
    --target <id1>,<id2>,<id3> --private-key <hex>`,
	RunE: runProve,
}

func init() {
	rootCmd.AddCommand(proveCmd)

	proveCmd.Flags().StringVarP(&proveStore, "store", "s", "causal-events.jsonl", "Event store file")
	proveCmd.Flags().StringVar(&proveAgentID, "agent", "", "Agent identifier (required)")
	proveCmd.Flags().StringVar(&proveTarget, "target", "", "Target event's causal identifier, or a comma-separated list (required)")
	proveCmd.Flags().IntVar(&proveDepth, "depth", 0, "Causal chain depth (default: 32)")
	proveCmd.Flags().StringVar(&provePrivateKey, "private-key", "", "Hex-encoded secp256k1 private key (required)")
	proveCmd.Flags().StringVarP(&proveOutputFile, "output", "o", "", "Output file (default: stdout)")
	proveCmd.Flags().BoolVar(&proveRaw, "raw", false, "Print the raw JSON proof(s) instead of the base64 transport header(s)")

	proveCmd.MarkFlagRequired("agent")
	proveCmd.MarkFlagRequired("target")
}

func runProve(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry(proveStore, proveAgentID)
	if err != nil {
		return err
	}

	if provePrivateKey == "" {
		provePrivateKey = os.Getenv("CAUSALPROOF_PRIVATE_KEY_HEX")
	}
	if provePrivateKey == "" {
		return fmt.Errorf("a private key is required: pass --private-key or set CAUSALPROOF_PRIVATE_KEY_HEX")
	}

	d, err := keys.DecodePrivateKey(provePrivateKey)
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}

	targets := splitTargets(proveTarget)
	proofs, err := proof.GenerateBatch(reg, reg, targets, d, proveDepth)
	if err != nil {
		return fmt.Errorf("failed to generate proof: %w", err)
	}

	out, err := renderProofs(proofs)
	if err != nil {
		return err
	}

	if proveOutputFile == "" {
		fmt.Println(out)
		return nil
	}
	if err := os.WriteFile(proveOutputFile, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write proof file: %w", err)
	}
	fmt.Printf("Proof saved to: %s\n", proveOutputFile)
	return nil
}

func splitTargets(raw string) []string {
	parts := strings.Split(raw, ",")
	targets := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			targets = append(targets, trimmed)
		}
	}
	return targets
}

func renderProofs(proofs []model.Proof) (string, error) {
	rendered := make([]string, 0, len(proofs))
	for _, p := range proofs {
		text, err := encodeOneProof(p)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, text)
	}
	return strings.Join(rendered, "\n"), nil
}

func encodeOneProof(p model.Proof) (string, error) {
	if proveRaw {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal proof: %w", err)
		}
		return string(data), nil
	}
	header, err := codec.Encode(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode proof: %w", err)
	}
	return header, nil
}
