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

package config

import (
	"github.com/sage-x-project/causalproof/light"
	"github.com/sage-x-project/causalproof/model"
	"github.com/sage-x-project/causalproof/rules"
)

// ToRulesSet converts the declarative RulesConfig into a rules.Set.
func (r RulesConfig) ToRulesSet() rules.Set {
	return rules.Set{
		RequestMustPrecedeResponse: r.RequestMustPrecedeResponse,
		MaxTimeGapMs:               r.MaxTimeGapMs,
		RequiredActionTypes:        toActionTypes(r.RequiredActionTypes),
		ForbiddenActionTypes:       toActionTypes(r.ForbiddenActionTypes),
		RequireDirectCausality:     r.RequireDirectCausality,
		MinVerificationDepth:       r.MinVerificationDepth,
	}
}

func toActionTypes(raw []string) []model.ActionType {
	if len(raw) == 0 {
		return nil
	}
	out := make([]model.ActionType, len(raw))
	for i, s := range raw {
		out[i] = model.ActionType(s)
	}
	return out
}

// ToLightOptions converts ProgressiveConfig into light.Options. isHighValue
// is supplied by the caller per-request; it is not a static config value.
func (p ProgressiveConfig) ToLightOptions(isHighValue bool) light.Options {
	return light.Options{
		MinDepth:       p.MinDepth,
		MaxAgeMs:       p.MaxAgeMs,
		AutoVerifyFull: p.AutoVerifyFull,
		IsHighValue:    isHighValue,
	}.WithDefaults()
}
