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
	"encoding/json"
	"net/http"
	"time"

	"github.com/sage-x-project/causalproof/codec"
	"github.com/sage-x-project/causalproof/internal/logger"
	"github.com/sage-x-project/causalproof/internal/metrics"
	"github.com/sage-x-project/causalproof/light"
	"github.com/sage-x-project/causalproof/model"
	"github.com/sage-x-project/causalproof/verify"
)

func newAPIServer(p *pipeline, log logger.Logger, port string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events", p.handleRegisterEvent)
	mux.HandleFunc("GET /chain/{id}", p.handleChain)
	mux.HandleFunc("POST /proofs", p.handleProve)
	mux.HandleFunc("POST /verify", p.handleVerify)
	mux.HandleFunc("POST /light-check", p.handleLightCheck)
	mux.HandleFunc("GET /public-key", p.handlePublicKey)

	return &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (p *pipeline) handlePublicKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"agentId":   p.cfg.Agent.ID,
		"publicKey": p.publicKey,
	})
}

func (p *pipeline) handleRegisterEvent(w http.ResponseWriter, r *http.Request) {
	var input model.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if input.Timestamp == 0 {
		input.Timestamp = time.Now().UnixMilli()
	}

	p.mu.Lock()
	event, err := p.registry.RegisterEvent(input)
	p.mu.Unlock()

	if err != nil {
		metrics.RegistrationErrors.WithLabelValues(err.Error()).Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	metrics.EventsRegistered.WithLabelValues(string(event.ActionType)).Inc()
	writeJSON(w, http.StatusCreated, event)
}

func (p *pipeline) handleChain(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	depth := 32

	p.mu.Lock()
	chain := p.registry.CausalChain(id, depth)
	p.mu.Unlock()

	if chain == nil {
		writeError(w, http.StatusNotFound, model.ErrUnknownEventID)
		return
	}
	writeJSON(w, http.StatusOK, chain)
}

type proveRequest struct {
	TargetID string `json:"targetId"`
	Depth    int    `json:"depth"`
}

func (p *pipeline) handleProve(w http.ResponseWriter, r *http.Request) {
	var req proveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pf, err := p.proveOnce(req.TargetID, req.Depth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	header, err := codec.Encode(pf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.ProofsGenerated.Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"proof":  pf,
		"header": header,
	})
}

type verifyRequest struct {
	Header    string `json:"header"`
	AgentID   string `json:"agentId"`
	PublicKey string `json:"publicKey"`
}

func (p *pipeline) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pf, err := codec.Decode(req.Header)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	result := verify.Verify(pf, req.AgentID, req.PublicKey, time.Now().UnixMilli())
	metrics.VerificationDuration.Observe(time.Since(start).Seconds())

	outcome := "invalid"
	if result.Valid {
		outcome = "valid"
	}
	metrics.VerificationsTotal.WithLabelValues(outcome).Inc()

	report := p.ruleSet.Validate(pf.CausalChain)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":           result.Valid,
		"errors":          result.Errors,
		"verifiedActions": result.VerifiedActions,
		"trustScore":      result.TrustScore,
		"rules": map[string]interface{}{
			"valid":      report.Valid,
			"violations": report.Violations,
		},
	})
}

type lightCheckRequest struct {
	Light        model.LightProof `json:"light"`
	Full         *model.Proof     `json:"full"`
	AgentID      string           `json:"agentId"`
	PublicKey    string           `json:"publicKey"`
	IsHighValue  bool             `json:"isHighValue"`
}

func (p *pipeline) handleLightCheck(w http.ResponseWriter, r *http.Request) {
	var req lightCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := p.cfg.Progressive.ToLightOptions(req.IsHighValue)
	decision, handle := light.ProgressiveVerify(p.scheduler, light.Input{
		Light: req.Light,
		Full:  req.Full,
	}, light.Context{AgentID: req.AgentID, PublicKey: req.PublicKey}, opts, time.Now().UnixMilli())

	outcome := "refused"
	if decision.CanProceed {
		outcome = "passed"
	}
	metrics.LightChecksTotal.WithLabelValues(outcome).Inc()
	if handle != nil {
		metrics.DeferredFullVerifications.Inc()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"canProceed":      decision.CanProceed,
		"refusalReason":   decision.RefusalReason,
		"immediateTrust":  decision.ImmediateTrust,
		"deferredStatus":  decision.DeferredStatus,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
