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

// Package metrics exposes Prometheus instrumentation for the causal event
// pipeline: registration throughput, proof generation, verification
// outcomes, and the light-proof fast path's hit rate.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "causalproof"

// Registry is the collector registry all metrics in this package attach
// to, separate from the default global registry so a host process can
// mount it under its own namespace.
var Registry = prometheus.NewRegistry()

var (
	// EventsRegistered counts successful register_event calls.
	EventsRegistered = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "events_registered_total",
			Help:      "Total number of events successfully registered, by action type.",
		},
		[]string{"action_type"},
	)

	// RegistrationErrors counts register_event failures by reason.
	RegistrationErrors = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "registration_errors_total",
			Help:      "Total number of register_event failures, by error reason.",
		},
		[]string{"reason"},
	)

	// ProofsGenerated counts calls to the proof generator.
	ProofsGenerated = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "proof",
			Name:      "generated_total",
			Help:      "Total number of proofs generated.",
		},
	)

	// VerificationsTotal counts full stateless verifications by outcome.
	VerificationsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verify",
			Name:      "verifications_total",
			Help:      "Total number of full proof verifications, by outcome.",
		},
		[]string{"outcome"}, // valid, invalid
	)

	// VerificationDuration tracks full verification latency.
	VerificationDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "verify",
			Name:      "duration_seconds",
			Help:      "Full proof verification duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 15),
		},
	)

	// LightChecksTotal counts light-proof fast-path checks by outcome.
	LightChecksTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "light",
			Name:      "checks_total",
			Help:      "Total number of light-proof fast-path checks, by outcome.",
		},
		[]string{"outcome"}, // passed, refused
	)

	// DeferredFullVerifications counts full verifications scheduled by the
	// progressive verifier.
	DeferredFullVerifications = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "light",
			Name:      "deferred_full_verifications_total",
			Help:      "Total number of full verifications scheduled by the progressive verifier.",
		},
	)
)

// Handler returns the HTTP handler serving this package's registry in the
// Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// StartServer starts a standalone metrics HTTP server bound to addr.
func StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}
