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

// Package causal implements the causal event registry: an ordered event
// store bound to one agent identifier, enforcing predecessor linkage over
// the leaves of a merkle.Log.
package causal

import (
	"strconv"
	"time"

	"github.com/sage-x-project/causalproof/crypto/hash"
	"github.com/sage-x-project/causalproof/crypto/ident"
	"github.com/sage-x-project/causalproof/internal/logger"
	"github.com/sage-x-project/causalproof/merkle"
	"github.com/sage-x-project/causalproof/model"
)

// Registry holds the bound agent identifier, the commitment log, and two
// lookup indices (by causal identifier and by event digest). A Registry
// is a single-writer resource: concurrent RegisterEvent calls on the same
// Registry must be serialized externally (spec.md §5).
type Registry struct {
	agentID       string
	tree          *merkle.Log
	byID          map[string]model.Event
	byDigest      map[string]model.Event
	order         []string // event hashes in insertion order
	lastEventHash string
	logger        logger.Logger
}

// New creates a registry bound to agentID. Construction fails immediately
// for an empty identifier (spec.md §7, "Construction errors").
func New(agentID string) (*Registry, error) {
	if agentID == "" {
		return nil, model.ErrEmptyAgentID
	}
	return &Registry{
		agentID:  agentID,
		tree:     merkle.NewLog(),
		byID:     make(map[string]model.Event),
		byDigest: make(map[string]model.Event),
		logger:   logger.GetDefaultLogger(),
	}, nil
}

// AgentID returns the registry's bound agent identifier.
func (r *Registry) AgentID() string {
	return r.agentID
}

// RegisterEvent performs the sequence described in spec.md §4.E: validate
// agent and predecessor, allocate an identifier, compute the canonical
// event digest, append it to the log, and index the augmented event.
func (r *Registry) RegisterEvent(input model.EventInput) (model.Event, error) {
	if input.AgentID != r.agentID {
		return model.Event{}, model.ErrAgentMismatch
	}
	if input.Predecessor != nil {
		if _, ok := r.byDigest[*input.Predecessor]; !ok {
			return model.Event{}, model.ErrUnknownPredecessor
		}
	}
	if !input.ActionType.Valid() {
		return model.Event{}, model.ErrInvalidActionType
	}

	causalID, err := ident.Generate(time.Now().UnixMilli())
	if err != nil {
		return model.Event{}, err
	}

	eventHash := canonicalDigest(input)
	position := r.tree.LeafCount()
	r.tree.Append(eventHash)
	root := r.tree.Root()

	evt := model.Event{
		CausalEventID:   causalID,
		AgentID:         input.AgentID,
		ActionType:      input.ActionType,
		PayloadHash:     input.PayloadHash,
		PredecessorHash: input.Predecessor,
		Timestamp:       input.Timestamp,
		EventHash:       eventHash,
		PositionInTree:  position,
		TreeRootHash:    root,
	}

	r.byID[causalID] = evt
	r.byDigest[eventHash] = evt
	r.order = append(r.order, eventHash)
	r.lastEventHash = eventHash

	r.logger.Debug("event registered",
		logger.AgentID(r.agentID),
		logger.CausalEventID(causalID),
		logger.Int("position", position),
	)

	return evt, nil
}

// canonicalDigest computes I3: sha3_concat(agentId, actionType, payloadHash,
// predecessor-or-null, decimal(timestamp)).
func canonicalDigest(input model.EventInput) string {
	pred := hash.Absent()
	if input.Predecessor != nil {
		pred = hash.S(*input.Predecessor)
	}
	return hash.ConcatHex(
		hash.S(input.AgentID),
		hash.S(string(input.ActionType)),
		hash.S(input.PayloadHash),
		pred,
		hash.S(strconv.FormatInt(input.Timestamp, 10)),
	)
}

// GetByID returns the event with the given causal identifier.
func (r *Registry) GetByID(id string) (model.Event, bool) {
	evt, ok := r.byID[id]
	return evt, ok
}

// GetByDigest returns the event with the given event digest.
func (r *Registry) GetByDigest(digest string) (model.Event, bool) {
	evt, ok := r.byDigest[digest]
	return evt, ok
}

// RootHash returns the log's current root ("" when empty).
func (r *Registry) RootHash() string {
	return r.tree.Root()
}

// LastEventHash returns the digest of the most recently registered event,
// or "" if none has been registered.
func (r *Registry) LastEventHash() string {
	return r.lastEventHash
}

// Count returns the number of registered events.
func (r *Registry) Count() int {
	return len(r.order)
}

// ProofPath returns the Merkle inclusion path for the event at the given
// leaf index, against the log's current state.
func (r *Registry) ProofPath(index int) ([]model.PathStep, error) {
	return r.tree.ProofPath(index)
}

// Export returns a debugging-only snapshot of the registry's state
// (spec.md §6, "Persisted state"); not a stable durability format.
func (r *Registry) Export() model.RegistryExport {
	events := make([]model.Event, 0, len(r.order))
	for _, h := range r.order {
		events = append(events, r.byDigest[h])
	}
	leaves := append([]string(nil), r.order...)

	return model.RegistryExport{
		AgentID: r.agentID,
		Events:  events,
		Tree: model.ExportTree{
			Leaves:    leaves,
			Levels:    levelsFor(len(leaves)),
			RootHash:  r.tree.Root(),
			LeafCount: len(leaves),
		},
	}
}

func levelsFor(leafCount int) int {
	if leafCount == 0 {
		return 0
	}
	levels := 1
	count := leafCount
	for count > 1 {
		count = (count + 1) / 2
		levels++
	}
	return levels
}

// CausalChain walks backwards from target via predecessor pointers up to
// maxDepth-1 steps, then returns the oldest-first list including the
// target itself. An unknown identifier returns an empty list; a broken
// predecessor pointer mid-walk (should not occur in a well-formed
// registry) terminates the walk early with what was gathered so far.
func (r *Registry) CausalChain(targetID string, maxDepth int) []model.ChainLink {
	target, ok := r.byID[targetID]
	if !ok {
		return nil
	}

	chain := []model.ChainLink{eventToLink(target)}
	cur := target
	steps := 0
	for cur.PredecessorHash != nil && steps < maxDepth-1 {
		prev, ok := r.byDigest[*cur.PredecessorHash]
		if !ok {
			break
		}
		chain = append([]model.ChainLink{eventToLink(prev)}, chain...)
		cur = prev
		steps++
	}
	return chain
}

func eventToLink(e model.Event) model.ChainLink {
	return model.ChainLink{
		EventHash:       e.EventHash,
		ActionType:      e.ActionType,
		Timestamp:       e.Timestamp,
		PredecessorHash: e.PredecessorHash,
	}
}
