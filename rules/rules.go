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

// Package rules implements the declarative semantic rules engine: a
// configurable set of checks over a causal chain, independent of proof
// verification.
package rules

import (
	"fmt"

	"github.com/sage-x-project/causalproof/model"
)

// Set is one declarative rule configuration. The zero value enforces
// nothing and validates every chain.
type Set struct {
	RequestMustPrecedeResponse bool
	MaxTimeGapMs               int64 // 0 means unbounded
	RequiredActionTypes        []model.ActionType
	ForbiddenActionTypes       []model.ActionType
	RequireDirectCausality     bool
	MinVerificationDepth       int
}

// StrictRequestResponse is a preset requiring strict request/response
// pairing with direct causality and a minimum chain depth of two.
func StrictRequestResponse() Set {
	return Set{
		RequestMustPrecedeResponse: true,
		RequireDirectCausality:     true,
		MinVerificationDepth:       2,
	}
}

// Report is the outcome of Validate.
type Report struct {
	Valid      bool
	Violations []string
}

// Validate checks chain against s. An empty chain is always valid,
// regardless of which rules are configured.
func (s Set) Validate(chain []model.ChainLink) Report {
	if len(chain) == 0 {
		return Report{Valid: true}
	}

	var violations []string

	if s.RequestMustPrecedeResponse {
		violations = append(violations, checkRequestPrecedesResponse(chain)...)
	}
	if s.MaxTimeGapMs > 0 {
		violations = append(violations, checkMaxTimeGap(chain, s.MaxTimeGapMs)...)
	}
	for _, required := range s.RequiredActionTypes {
		if !containsActionType(chain, required) {
			violations = append(violations, fmt.Sprintf("required action type %q does not appear in the chain", required))
		}
	}
	for _, forbidden := range s.ForbiddenActionTypes {
		if containsActionType(chain, forbidden) {
			violations = append(violations, fmt.Sprintf("forbidden action type %q appears in the chain", forbidden))
		}
	}
	if s.RequireDirectCausality {
		violations = append(violations, checkDirectCausality(chain)...)
	}
	if s.MinVerificationDepth > 0 && len(chain) < s.MinVerificationDepth {
		violations = append(violations, fmt.Sprintf("chain length %d is below the required minimum depth %d", len(chain), s.MinVerificationDepth))
	}

	return Report{Valid: len(violations) == 0, Violations: violations}
}

func checkRequestPrecedesResponse(chain []model.ChainLink) []string {
	var violations []string
	seenRequest := false
	for _, link := range chain {
		switch link.ActionType {
		case model.ActionRequest:
			seenRequest = true
		case model.ActionResponse:
			if !seenRequest {
				violations = append(violations, fmt.Sprintf("response at event %s has no preceding request in the chain", link.EventHash))
			}
		}
	}
	return violations
}

func checkMaxTimeGap(chain []model.ChainLink, maxGapMs int64) []string {
	var violations []string
	for i := 1; i < len(chain); i++ {
		gap := chain[i].Timestamp - chain[i-1].Timestamp
		if gap > maxGapMs {
			violations = append(violations, fmt.Sprintf("time gap of %dms between %s and %s exceeds the maximum of %dms", gap, chain[i-1].EventHash, chain[i].EventHash, maxGapMs))
		}
	}
	return violations
}

func containsActionType(chain []model.ChainLink, t model.ActionType) bool {
	for _, link := range chain {
		if link.ActionType == t {
			return true
		}
	}
	return false
}

func checkDirectCausality(chain []model.ChainLink) []string {
	var violations []string
	for i := 1; i < len(chain); i++ {
		prev := chain[i-1]
		cur := chain[i]
		if cur.PredecessorHash == nil || *cur.PredecessorHash != prev.EventHash {
			violations = append(violations, fmt.Sprintf("event %s does not directly descend from %s", cur.EventHash, prev.EventHash))
		}
	}
	return violations
}
