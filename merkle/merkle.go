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

// Package merkle implements the append-only Merkle commitment: incremental
// root update and inclusion-proof construction/verification over 32-byte
// leaf digests, all carried as 0x-prefixed hex strings (the transport form
// used everywhere else in this library).
package merkle

import (
	"fmt"

	"github.com/sage-x-project/causalproof/crypto/hash"
	"github.com/sage-x-project/causalproof/model"
)

// nodeKey addresses one node in the implicit binary tree by its level
// (0 = leaves) and its index within that level.
type nodeKey struct {
	level int
	index int
}

// Log is an append-only log of leaf digests with an incrementally
// maintained root. It is a single-writer structure: concurrent Append
// calls on the same Log must be serialized by the caller (spec.md §5).
type Log struct {
	nodes     map[nodeKey]string
	leafCount int
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{nodes: make(map[nodeKey]string)}
}

// Pair is the sorted combiner: sha3_concat(min(a,b), max(a,b)) comparing
// the hex strings lexicographically (including their 0x prefix). It makes
// a proof step invariant under left/right labeling; the PathStep still
// carries a position so verifiers know which side the sibling was on.
func Pair(a, b string) string {
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	return hash.ConcatHex(hash.S(lo), hash.S(hi))
}

// LeafCount returns the number of leaves appended so far.
func (l *Log) LeafCount() int {
	return l.leafCount
}

// Append adds a new leaf digest and returns its 0-based index. Implements
// the incremental algorithm of spec.md §4.D exactly: walk up from the new
// leaf, pairing with an already-stored left sibling where one exists or
// promoting unpaired, until the level holding exactly one node is reached.
func (l *Log) Append(leaf string) int {
	leafIndex := l.leafCount
	l.nodes[nodeKey{0, leafIndex}] = leaf
	l.leafCount++

	level := 0
	i := leafIndex
	cur := leaf
	for {
		p := i / 2
		if i%2 == 0 {
			l.nodes[nodeKey{level + 1, p}] = cur
		} else {
			sibling := l.nodes[nodeKey{level, i - 1}]
			cur = Pair(sibling, cur)
			l.nodes[nodeKey{level + 1, p}] = cur
		}
		level++
		i = p
		if levelNodeCount(l.leafCount, level) == 1 {
			break
		}
	}
	return leafIndex
}

// Root returns the current commitment: the empty string sentinel with 0
// leaves, the leaf digest itself with 1 leaf, otherwise the unique node at
// the topmost level.
func (l *Log) Root() string {
	if l.leafCount == 0 {
		return ""
	}
	top := topLevel(l.leafCount)
	return l.nodes[nodeKey{top, 0}]
}

// topLevel returns the smallest level >= 1 at which exactly one node
// exists, mirroring the "while true" loop in Append that always performs
// at least one promotion/pairing step even for a single leaf.
func topLevel(total int) int {
	if total == 0 {
		return 0
	}
	level := 0
	count := total
	for {
		level++
		count = (count + 1) / 2
		if count == 1 {
			return level
		}
	}
}

// levelNodeCount returns how many nodes exist at level L of a tree built
// from `total` leaves.
func levelNodeCount(total, level int) int {
	count := total
	for s := 0; s < level; s++ {
		count = (count + 1) / 2
	}
	return count
}

// ProofPath returns the inclusion path for leaf index i against the
// log's current state: one element per level 0..height-2, each carrying
// the sibling digest and its position, or a self-pair sentinel when no
// sibling exists yet at that level (odd node count, the node was
// promoted alone).
func (l *Log) ProofPath(i int) ([]model.PathStep, error) {
	if i < 0 || i >= l.leafCount {
		return nil, fmt.Errorf("merkle: leaf index %d out of range for %d leaves", i, l.leafCount)
	}

	if l.leafCount == 1 {
		// The root is the leaf itself; there is no level to fold against,
		// so the path has length 0 (spec.md §4.D/§8 scenario 2).
		return []model.PathStep{}, nil
	}

	top := topLevel(l.leafCount)
	steps := make([]model.PathStep, 0, top)

	idx := i
	for level := 0; level < top; level++ {
		countAtLevel := levelNodeCount(l.leafCount, level)
		nodeHash := l.nodes[nodeKey{level, idx}]
		siblingIdx := idx ^ 1

		if siblingIdx < countAtLevel {
			siblingHash := l.nodes[nodeKey{level, siblingIdx}]
			position := model.PositionLeft
			if siblingIdx > idx {
				position = model.PositionRight
			}
			steps = append(steps, model.PathStep{
				EventHash:   nodeHash,
				SiblingHash: siblingHash,
				Position:    position,
			})
		} else {
			// Self-pair sentinel: no sibling exists yet at this level.
			steps = append(steps, model.PathStep{
				EventHash:   nodeHash,
				SiblingHash: nodeHash,
				Position:    model.PositionRight,
			})
		}
		idx = idx / 2
	}
	return steps, nil
}

// VerifyPath folds a leaf digest against a proof path and checks it
// equals expectedRoot. An empty expected root rejects every proof; an
// empty path accepts only when the leaf itself equals the expected root
// (the single-leaf case).
func VerifyPath(leaf string, path []model.PathStep, expectedRoot string) bool {
	if expectedRoot == "" {
		return false
	}
	if len(path) == 0 {
		return leaf == expectedRoot
	}

	current := leaf
	for _, step := range path {
		if step.SiblingHash == step.EventHash {
			// Self-pair sentinel: skip folding, node was promoted alone.
			continue
		}
		current = Pair(step.SiblingHash, current)
	}
	return current == expectedRoot
}
