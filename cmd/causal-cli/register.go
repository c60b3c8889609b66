package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sage-x-project/causalproof/model"
	"github.com/spf13/cobra"
)

var (
	registerStore       string
	registerAgentID     string
	registerActionType  string
	registerPayloadHash string
	registerPredecessor string
	registerTimestamp   int64
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a causal event into the local event store",
	Long: `Register a new causal event, chaining it to an optional
predecessor event digest, and append it to a local JSONL event store.

Example:
  causal-cli register --store events.jsonl --agent agent-1 \
    --action request --payload-hash 0xabc...

  causal-cli register --store events.jsonl --agent agent-1 \
    --action response --payload-hash 0xdef... --predecessor 0x123...`,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringVarP(&registerStore, "store", "s", "causal-events.jsonl", "Event store file")
	registerCmd.Flags().StringVar(&registerAgentID, "agent", "", "Agent identifier (required)")
	registerCmd.Flags().StringVar(&registerActionType, "action", "", "Action type (request, response, error, state_transition)")
	registerCmd.Flags().StringVar(&registerPayloadHash, "payload-hash", "", "Hex-encoded payload hash")
	registerCmd.Flags().StringVar(&registerPredecessor, "predecessor", "", "Hex-encoded predecessor event digest (optional)")
	registerCmd.Flags().Int64Var(&registerTimestamp, "timestamp", 0, "Unix millisecond timestamp (default: now)")

	registerCmd.MarkFlagRequired("agent")
	registerCmd.MarkFlagRequired("action")
	registerCmd.MarkFlagRequired("payload-hash")
}

func runRegister(cmd *cobra.Command, args []string) error {
	timestamp := registerTimestamp
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}

	input := model.EventInput{
		AgentID:     registerAgentID,
		ActionType:  model.ActionType(registerActionType),
		PayloadHash: registerPayloadHash,
		Timestamp:   timestamp,
	}
	if registerPredecessor != "" {
		input.Predecessor = &registerPredecessor
	}

	reg, err := loadRegistry(registerStore, registerAgentID)
	if err != nil {
		return err
	}

	event, err := reg.RegisterEvent(input)
	if err != nil {
		return fmt.Errorf("failed to register event: %w", err)
	}

	if err := appendEvent(registerStore, input); err != nil {
		return err
	}

	out, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
