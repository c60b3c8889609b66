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

// Package verify implements the stateless proof verifier: an independent
// re-check of a proof that needs nothing beyond the expected agent
// identifier and public key. It never touches a registry.
package verify

import (
	"encoding/hex"
	"strconv"
	"strings"
	"sync"

	"github.com/sage-x-project/causalproof/crypto/hash"
	"github.com/sage-x-project/causalproof/crypto/keys"
	"github.com/sage-x-project/causalproof/merkle"
	"github.com/sage-x-project/causalproof/model"
)

// Result is the outcome of verifying one proof.
type Result struct {
	Valid           bool
	Errors          []string
	VerifiedActions int
	TrustScore      float64
}

const trustWindowMs = 300000.0

// Verify runs the five checks of §4.G concurrently and folds their errors
// into a single result. now is the caller-supplied current time in Unix
// milliseconds, used only for the trust score's age term.
func Verify(p model.Proof, expectedAgentID, expectedPublicKey string, nowMillis int64) Result {
	var (
		mu     sync.Mutex
		errs   []string
		wg     sync.WaitGroup
		chainOK bool
	)

	add := func(msg string) {
		mu.Lock()
		errs = append(errs, msg)
		mu.Unlock()
	}

	wg.Add(5)

	go func() {
		defer wg.Done()
		if p.TargetEvent.AgentID != expectedAgentID {
			add("identity: target event agent does not match expected agent identifier")
		}
	}()

	go func() {
		defer wg.Done()
		if !merkle.VerifyPath(p.TargetEvent.EventHash, p.ProofPath, p.TreeRootHash) {
			add("inclusion: proof path does not fold to the claimed root")
		}
	}()

	go func() {
		defer wg.Done()
		digest, err := decodeRootHex(p.TreeRootHash)
		if err != nil || !keys.Verify(digest, p.AgentSignature, expectedPublicKey) {
			add("signature: agent signature over the tree root is invalid")
		}
	}()

	go func() {
		defer wg.Done()
		recomputed := canonicalDigest(p.TargetEvent)
		if recomputed != p.TargetEvent.EventHash {
			add("content integrity: recomputed event digest does not match target event hash")
		}
	}()

	go func() {
		defer wg.Done()
		ok, msg := checkChainIntegrity(p)
		chainOK = ok
		if !ok {
			add("chain integrity: " + msg)
		}
	}()

	wg.Wait()

	result := Result{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
	if chainOK {
		result.VerifiedActions = len(p.CausalChain)
	}
	if result.Valid {
		age := float64(nowMillis - p.TargetEvent.Timestamp)
		recency := 1 - age/trustWindowMs
		if recency < 0 {
			recency = 0
		}
		depthTerm := float64(result.VerifiedActions) / 10
		if depthTerm > 1 {
			depthTerm = 1
		}
		result.TrustScore = 0.2 + 0.4*depthTerm + 0.4*recency
	}
	return result
}

func decodeRootHex(root string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(root, "0x"))
}

// canonicalDigest mirrors causal.canonicalDigest without importing the
// causal package, keeping verify independent of any mutable registry.
func canonicalDigest(e model.Event) string {
	pred := hash.Absent()
	if e.PredecessorHash != nil {
		pred = hash.S(*e.PredecessorHash)
	}
	return hash.ConcatHex(
		hash.S(e.AgentID),
		hash.S(string(e.ActionType)),
		hash.S(e.PayloadHash),
		pred,
		hash.S(strconv.FormatInt(e.Timestamp, 10)),
	)
}

// checkChainIntegrity implements §4.G.5: the last element matches the
// target, each non-first element's predecessor equals the previous
// element's digest, and timestamps never move backwards.
func checkChainIntegrity(p model.Proof) (bool, string) {
	chain := p.CausalChain
	if len(chain) == 0 {
		return false, "chain is empty"
	}
	last := chain[len(chain)-1]
	if last.EventHash != p.TargetEvent.EventHash {
		return false, "last chain element does not match target event"
	}
	for i := 1; i < len(chain); i++ {
		prev := chain[i-1]
		cur := chain[i]
		if cur.PredecessorHash == nil || *cur.PredecessorHash != prev.EventHash {
			return false, "chain element's predecessor does not equal the previous element's digest"
		}
		if cur.Timestamp < prev.Timestamp {
			return false, "chain timestamps are not monotonically non-decreasing"
		}
	}
	return true, ""
}
