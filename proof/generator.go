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

// Package proof assembles a self-contained causal proof — inclusion path,
// causal chain, and a signature over the registry's current root — for a
// previously registered event.
package proof

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/sage-x-project/causalproof/crypto/keys"
	"github.com/sage-x-project/causalproof/model"
)

// rootBytes decodes a 0x-prefixed hex root digest back to raw bytes for
// signing. The root is already a SHA3-256 digest; it is signed directly,
// never re-hashed.
func rootBytes(root string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(root, "0x"))
}

// Source is the subset of causal.Registry the generator needs. Declared
// here rather than imported to keep proof decoupled from the registry's
// mutation surface.
type Source interface {
	GetByID(id string) (model.Event, bool)
	CausalChain(targetID string, maxDepth int) []model.ChainLink
	RootHash() string
}

const defaultChainDepth = 32

// Generate builds a proof for the event identified by targetID, signing
// the registry's current root with d. depth <= 0 selects the default
// chain depth.
func Generate(src Source, targetID string, d *big.Int, depth int) (model.Proof, error) {
	target, ok := src.GetByID(targetID)
	if !ok {
		return model.Proof{}, model.ErrUnknownEventID
	}
	if depth <= 0 {
		depth = defaultChainDepth
	}

	chain := src.CausalChain(targetID, depth)
	root := src.RootHash()

	digest, err := rootBytes(root)
	if err != nil {
		return model.Proof{}, err
	}
	sig, err := keys.Sign(digest, d)
	if err != nil {
		return model.Proof{}, err
	}

	return model.Proof{
		TargetEvent:    target,
		CausalChain:    chain,
		TreeRootHash:   root,
		AgentSignature: sig,
	}, nil
}

// GenerateWithPath builds a proof and additionally fills in ProofPath from
// the source's Merkle log, for registries that expose one (callers that
// only have Source cannot produce an inclusion path).
func GenerateWithPath(src Source, pathSrc interface {
	ProofPath(index int) ([]model.PathStep, error)
}, targetID string, d *big.Int, depth int) (model.Proof, error) {
	p, err := Generate(src, targetID, d, depth)
	if err != nil {
		return model.Proof{}, err
	}
	path, err := pathSrc.ProofPath(p.TargetEvent.PositionInTree)
	if err != nil {
		return model.Proof{}, err
	}
	p.ProofPath = path
	return p, nil
}

// GenerateBatch applies Generate over a list of target identifiers,
// stopping and returning the first error encountered.
func GenerateBatch(src Source, pathSrc interface {
	ProofPath(index int) ([]model.PathStep, error)
}, targetIDs []string, d *big.Int, depth int) ([]model.Proof, error) {
	out := make([]model.Proof, 0, len(targetIDs))
	for _, id := range targetIDs {
		p, err := GenerateWithPath(src, pathSrc, id, d, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
