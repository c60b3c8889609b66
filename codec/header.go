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

// Package codec implements the transport header encoding for a proof:
// base64(utf8(canonical_json(proof))), with schema re-validation on
// decode.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sage-x-project/causalproof/model"
)

// Header names for carrying an encoded proof alongside a request or
// response.
const (
	HeaderProof       = "X-Causal-Proof"
	HeaderProofSchema = "X-Causal-Proof-Schema"
	SchemaVersion     = "causal-v1"
)

// ErrSchemaMismatch is returned by Decode when the parsed JSON does not
// match the proof shape.
var ErrSchemaMismatch = errors.New("codec: decoded payload does not match the proof schema")

// Encode renders a proof as base64(utf8(json(proof))), the exact payload
// carried in the X-Causal-Proof header.
func Encode(p model.Proof) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("codec: marshal proof: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode and re-validates the parsed object's shape
// against the proof schema; any mismatch is a hard failure rather than a
// partially-populated value.
func Decode(text string) (model.Proof, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return model.Proof{}, fmt.Errorf("codec: base64 decode: %w", err)
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return model.Proof{}, fmt.Errorf("codec: json decode: %w", err)
	}
	if err := validateShape(generic); err != nil {
		return model.Proof{}, err
	}

	var p model.Proof
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Proof{}, fmt.Errorf("codec: json decode: %w", err)
	}
	return p, nil
}

// validateShape checks that generic is a non-null object with the
// required fields present and of the correct primitive/array kind,
// including the nested target event.
func validateShape(v map[string]interface{}) error {
	if v == nil {
		return ErrSchemaMismatch
	}

	target, ok := v["targetEvent"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: targetEvent missing or not an object", ErrSchemaMismatch)
	}
	if err := validateTargetEvent(target); err != nil {
		return err
	}

	if _, ok := v["proofPath"].([]interface{}); !ok {
		return fmt.Errorf("%w: proofPath missing or not an array", ErrSchemaMismatch)
	}
	if _, ok := v["causalChain"].([]interface{}); !ok {
		return fmt.Errorf("%w: causalChain missing or not an array", ErrSchemaMismatch)
	}
	if err := requireString(v, "treeRootHash"); err != nil {
		return err
	}
	if err := requireString(v, "agentSignature"); err != nil {
		return err
	}
	return nil
}

func validateTargetEvent(t map[string]interface{}) error {
	for _, field := range []string{"causalEventId", "agentId", "actionType", "payloadHash", "eventHash", "treeRootHash"} {
		if err := requireString(t, field); err != nil {
			return err
		}
	}
	if _, ok := t["timestamp"].(float64); !ok {
		return fmt.Errorf("%w: targetEvent.timestamp missing or not a number", ErrSchemaMismatch)
	}
	if _, ok := t["positionInTree"].(float64); !ok {
		return fmt.Errorf("%w: targetEvent.positionInTree missing or not a number", ErrSchemaMismatch)
	}
	if v, present := t["predecessorHash"]; present {
		if v != nil {
			if _, ok := v.(string); !ok {
				return fmt.Errorf("%w: targetEvent.predecessorHash must be a string or null", ErrSchemaMismatch)
			}
		}
	}
	return nil
}

func requireString(v map[string]interface{}, field string) error {
	s, ok := v[field].(string)
	if !ok || s == "" {
		return fmt.Errorf("%w: %s missing or not a non-empty string", ErrSchemaMismatch, field)
	}
	return nil
}
