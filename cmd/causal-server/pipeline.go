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
	"math/big"
	"sync"

	"github.com/sage-x-project/causalproof/causal"
	"github.com/sage-x-project/causalproof/config"
	"github.com/sage-x-project/causalproof/crypto/keys"
	"github.com/sage-x-project/causalproof/internal/logger"
	"github.com/sage-x-project/causalproof/light"
	"github.com/sage-x-project/causalproof/model"
	"github.com/sage-x-project/causalproof/proof"
	"github.com/sage-x-project/causalproof/rules"
	"golang.org/x/sync/singleflight"
)

// pipeline bundles the registry, signing key, rule set, and progressive
// verification scheduler a single causal-server process serves.
type pipeline struct {
	cfg       *config.Config
	log       logger.Logger
	mu        sync.Mutex
	registry  *causal.Registry
	signingD  *big.Int
	publicKey string
	ruleSet   rules.Set
	scheduler *light.Scheduler

	// proveFlight collapses concurrent prove requests for the same
	// target+depth into a single registry walk, keyed by request identity.
	proveFlight singleflight.Group
}

func newPipeline(cfg *config.Config, log logger.Logger) (*pipeline, error) {
	registry, err := causal.New(cfg.Agent.ID)
	if err != nil {
		return nil, err
	}

	var d *big.Int
	if cfg.Agent.PrivateKeyHex != "" {
		d, err = keys.DecodePrivateKey(cfg.Agent.PrivateKeyHex)
		if err != nil {
			return nil, err
		}
	} else {
		d, err = keys.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		log.Warn("no private key configured; generated an ephemeral one for this process")
	}
	x, y := keys.PublicKey(d)

	return &pipeline{
		cfg:       cfg,
		log:       log,
		registry:  registry,
		signingD:  d,
		publicKey: keys.EncodePublicKey(x, y),
		ruleSet:   cfg.Rules.ToRulesSet(),
		scheduler: light.NewScheduler(cfg.Progressive.SchedulerWorkers),
	}, nil
}

func (p *pipeline) close() {
	p.scheduler.Close()
}

// proveOnce generates a proof for targetID at depth, deduplicating
// concurrent identical requests via singleflight so a burst of callers
// asking for the same target only walks the registry once.
func (p *pipeline) proveOnce(targetID string, depth int) (model.Proof, error) {
	v, err, _ := p.proveFlight.Do(fmt.Sprintf("%s:%d", targetID, depth), func() (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return proof.GenerateWithPath(p.registry, p.registry, targetID, p.signingD, depth)
	})
	if err != nil {
		return model.Proof{}, err
	}
	return v.(model.Proof), nil
}
