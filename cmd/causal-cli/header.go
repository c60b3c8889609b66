package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sage-x-project/causalproof/codec"
	"github.com/sage-x-project/causalproof/model"
	"github.com/spf13/cobra"
)

var (
	encodeInputFile string
	decodeInputFile string
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a raw JSON proof as a transport header value",
	Example: `  causal-cli encode --input proof.json
  cat proof.json | causal-cli encode`,
	RunE: runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a transport header value back into a JSON proof",
	Example: `  causal-cli decode --input proof.txt
  cat proof.txt | causal-cli decode`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)

	encodeCmd.Flags().StringVarP(&encodeInputFile, "input", "i", "", "Input file (default: stdin)")
	decodeCmd.Flags().StringVarP(&decodeInputFile, "input", "i", "", "Input file (default: stdin)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	data, err := readFileOrStdin(encodeInputFile)
	if err != nil {
		return err
	}

	var p model.Proof
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse proof JSON: %w", err)
	}

	header, err := codec.Encode(p)
	if err != nil {
		return fmt.Errorf("failed to encode proof: %w", err)
	}
	fmt.Println(header)
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := readFileOrStdin(decodeInputFile)
	if err != nil {
		return err
	}

	p, err := codec.Decode(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("failed to decode proof header: %w", err)
	}

	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal proof: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func readFileOrStdin(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no input provided")
	}
	return data, nil
}
