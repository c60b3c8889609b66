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

// Package light implements the light proof fast path and the progressive
// verifier that defers full cryptographic verification to a later
// scheduler tick.
package light

import (
	"github.com/sage-x-project/causalproof/model"
)

const (
	defaultMaxAgeMs = 300000
	defaultMinDepth = 3
)

// Options configures the light check and the progressive verifier.
type Options struct {
	MinDepth       int
	MaxAgeMs       int64
	AutoVerifyFull bool
	IsHighValue    bool
}

// WithDefaults fills zero fields with the spec's defaults and leaves
// AutoVerifyFull at its caller-supplied value (defaulting true is the
// caller's job since Go has no ternary default-true semantics for bools).
func (o Options) WithDefaults() Options {
	if o.MinDepth == 0 {
		o.MinDepth = defaultMinDepth
	}
	if o.MaxAgeMs == 0 {
		o.MaxAgeMs = defaultMaxAgeMs
	}
	return o
}

// CheckResult is the outcome of the fast synchronous light check.
type CheckResult struct {
	Passed bool
	Reason string
}

// Check runs the fast, non-cryptographic light-proof check described in
// §4.I: identity, freshness, depth, target membership and position, and
// chain monotonicity.
func Check(lp model.LightProof, expectedAgentID string, nowMillis int64, opts Options) CheckResult {
	opts = opts.WithDefaults()

	if lp.AgentID != expectedAgentID {
		return CheckResult{Reason: "agent identifier does not match expectation"}
	}
	if nowMillis-lp.GeneratedAt > opts.MaxAgeMs {
		return CheckResult{Reason: "light proof has exceeded its maximum age"}
	}
	if len(lp.Chain) < opts.MinDepth {
		return CheckResult{Reason: "chain length is below the minimum required depth"}
	}

	last := lp.Chain[len(lp.Chain)-1]
	if last.EventHash != lp.TargetHash {
		return CheckResult{Reason: "target digest does not equal the last chain element"}
	}
	found := false
	for _, entry := range lp.Chain {
		if entry.EventHash == lp.TargetHash {
			found = true
			break
		}
	}
	if !found {
		return CheckResult{Reason: "target digest does not appear in the chain"}
	}
	for i := 1; i < len(lp.Chain); i++ {
		if lp.Chain[i].Timestamp < lp.Chain[i-1].Timestamp {
			return CheckResult{Reason: "chain timestamps are not monotonically non-decreasing"}
		}
	}

	return CheckResult{Passed: true}
}

// ReasonHighValueRequiresFull is returned by ProgressiveVerify as the
// refusal reason when IsHighValue short-circuits the immediate decision.
const ReasonHighValueRequiresFull = "high_value_requires_full_verification"

// ReasonLightVerificationFailed is returned by ProgressiveVerify as the
// refusal reason when the synchronous light check itself fails.
const ReasonLightVerificationFailed = "light_verification_failed"

// DeferredStatus enumerates the lifecycle of a deferred full verification.
type DeferredStatus string

const (
	DeferredNone    DeferredStatus = ""
	DeferredPending DeferredStatus = "pending"
)

// Decision is the immediate, synchronous outcome of ProgressiveVerify.
type Decision struct {
	CanProceed      bool
	RefusalReason   string
	ImmediateTrust  float64
	DeferredStatus  DeferredStatus
	LightCheck      CheckResult
}
