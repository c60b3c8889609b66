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

package light

import (
	"github.com/sage-x-project/causalproof/model"
)

// Input bundles the light proof with an optional full proof, mirroring
// the spec's {light, full?} shape.
type Input struct {
	Light model.LightProof
	Full  *model.Proof
}

// Context is the caller's expectation set for verification.
type Context struct {
	AgentID   string
	PublicKey string // empty means "not supplied"
}

const immediateTrustOnPass = 0.7

// ProgressiveVerify runs the light check synchronously and, when eligible,
// schedules the deferred full verification on sched. now is the caller's
// current time in Unix milliseconds.
func ProgressiveVerify(sched *Scheduler, in Input, ctx Context, opts Options, nowMillis int64) (Decision, *Handle) {
	opts = opts.WithDefaults()
	lightResult := Check(in.Light, ctx.AgentID, nowMillis, opts)

	if opts.IsHighValue {
		return Decision{
			CanProceed:    false,
			RefusalReason: ReasonHighValueRequiresFull,
			LightCheck:    lightResult,
		}, nil
	}

	decision := Decision{
		CanProceed: lightResult.Passed,
		LightCheck: lightResult,
	}
	if lightResult.Passed {
		decision.ImmediateTrust = immediateTrustOnPass
	} else {
		decision.RefusalReason = ReasonLightVerificationFailed
	}

	var handle *Handle
	if in.Full != nil && ctx.PublicKey != "" && opts.AutoVerifyFull {
		decision.DeferredStatus = DeferredPending
		handle = sched.Schedule(*in.Full, ctx.AgentID, ctx.PublicKey, nowMillis)
	}

	return decision, handle
}
