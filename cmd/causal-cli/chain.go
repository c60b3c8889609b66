package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	chainStore    string
	chainAgentID  string
	chainTarget   string
	chainMaxDepth int
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the causal chain leading to an event",
	Long: `Walk the causal chain backwards from a target event's identifier
and print the resulting links, oldest first.

Example:
  causal-cli chain --store events.jsonl --agent agent-1 --target <causalEventId>`,
	RunE: runChain,
}

func init() {
	rootCmd.AddCommand(chainCmd)

	chainCmd.Flags().StringVarP(&chainStore, "store", "s", "causal-events.jsonl", "Event store file")
	chainCmd.Flags().StringVar(&chainAgentID, "agent", "", "Agent identifier (required)")
	chainCmd.Flags().StringVar(&chainTarget, "target", "", "Target event's causal identifier (required)")
	chainCmd.Flags().IntVar(&chainMaxDepth, "depth", 32, "Maximum chain depth to walk")

	chainCmd.MarkFlagRequired("agent")
	chainCmd.MarkFlagRequired("target")
}

func runChain(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry(chainStore, chainAgentID)
	if err != nil {
		return err
	}

	chain := reg.CausalChain(chainTarget, chainMaxDepth)
	if chain == nil {
		return fmt.Errorf("no event found with causal identifier %q", chainTarget)
	}

	out, err := json.MarshalIndent(chain, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chain: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
