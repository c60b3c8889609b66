// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "causal-cli",
	Short: "causalproof CLI - causal event registration and proof tooling",
	Long: `causal-cli provides command-line tools for working with causal
behavioral verification:

- Key pair generation (secp256k1)
- Registering causal events into a local event store
- Generating cryptographic proofs of causal chains
- Verifying proofs and checking semantic rules
- Encoding/decoding proof transport headers`,
}

func main() {
	// Best-effort: a local .env can supply CAUSALPROOF_PRIVATE_KEY_HEX etc.
	// for ad hoc use; its absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Note: commands are registered in their respective files
	// - keygen.go: keygenCmd
	// - register.go: registerCmd
	// - chain.go: chainCmd
	// - prove.go: proveCmd
	// - verify.go: verifyCmd
	// - header.go: encodeCmd, decodeCmd
}
