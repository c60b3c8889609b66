package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sage-x-project/causalproof/codec"
	"github.com/sage-x-project/causalproof/model"
	"github.com/sage-x-project/causalproof/rules"
	"github.com/sage-x-project/causalproof/verify"
	"github.com/spf13/cobra"
)

var (
	verifyInputFile  string
	verifyAgentID    string
	verifyPublicKey  string
	verifyRaw        bool
	verifyStrictRule bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a causal behavioral proof",
	Long: `Verify a proof's identity, Merkle inclusion, signature, content
integrity, and causal chain integrity, then print the resulting trust
score.

Example:
  causal-cli verify --input proof.txt --agent agent-1 --public-key <hex>
  cat proof.txt | causal-cli verify --agent agent-1 --public-key <hex>`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyInputFile, "input", "i", "", "Proof file (default: stdin)")
	verifyCmd.Flags().StringVar(&verifyAgentID, "agent", "", "Expected agent identifier (required)")
	verifyCmd.Flags().StringVar(&verifyPublicKey, "public-key", "", "Expected hex-encoded public key (required)")
	verifyCmd.Flags().BoolVar(&verifyRaw, "raw", false, "Input is a raw JSON proof rather than a base64 transport header")
	verifyCmd.Flags().BoolVar(&verifyStrictRule, "strict", false, "Also apply the strict request/response semantic rule preset")

	verifyCmd.MarkFlagRequired("agent")
	verifyCmd.MarkFlagRequired("public-key")
}

func runVerify(cmd *cobra.Command, args []string) error {
	data, err := readVerifyInput()
	if err != nil {
		return err
	}

	var p model.Proof
	if verifyRaw {
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to parse proof: %w", err)
		}
	} else {
		p, err = codec.Decode(strings.TrimSpace(string(data)))
		if err != nil {
			return fmt.Errorf("failed to decode proof header: %w", err)
		}
	}

	result := verify.Verify(p, verifyAgentID, verifyPublicKey, time.Now().UnixMilli())

	output := map[string]interface{}{
		"valid":           result.Valid,
		"errors":          result.Errors,
		"verifiedActions": result.VerifiedActions,
		"trustScore":      result.TrustScore,
	}

	if verifyStrictRule {
		report := rules.StrictRequestResponse().Validate(p.CausalChain)
		output["rules"] = map[string]interface{}{
			"valid":      report.Valid,
			"violations": report.Violations,
		}
	}

	out, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(out))

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}

func readVerifyInput() ([]byte, error) {
	if verifyInputFile != "" {
		data, err := os.ReadFile(verifyInputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read proof file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no proof provided")
	}
	return data, nil
}
