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

// Package config provides configuration management for causalproof
// processes: agent identity, rule presets, progressive-verifier defaults,
// logging, metrics, and health.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the main configuration structure.
type Config struct {
	Environment string          `yaml:"environment" json:"environment"`
	Agent       AgentConfig     `yaml:"agent" json:"agent"`
	Rules       RulesConfig     `yaml:"rules" json:"rules"`
	Progressive ProgressiveConfig `yaml:"progressive" json:"progressive"`
	Logging     *LoggingConfig  `yaml:"logging" json:"logging"`
	Metrics     *MetricsConfig  `yaml:"metrics" json:"metrics"`
	Health      *HealthConfig   `yaml:"health" json:"health"`
}

// AgentConfig identifies the agent this process registers events for.
type AgentConfig struct {
	ID                string `yaml:"id" json:"id"`
	PrivateKeyHex     string `yaml:"private_key_hex" json:"private_key_hex"`
	DefaultChainDepth int    `yaml:"default_chain_depth" json:"default_chain_depth"`
}

// RulesConfig mirrors rules.Set so it can be loaded from file.
type RulesConfig struct {
	RequestMustPrecedeResponse bool     `yaml:"request_must_precede_response" json:"request_must_precede_response"`
	MaxTimeGapMs               int64    `yaml:"max_time_gap_ms" json:"max_time_gap_ms"`
	RequiredActionTypes        []string `yaml:"required_action_types" json:"required_action_types"`
	ForbiddenActionTypes        []string `yaml:"forbidden_action_types" json:"forbidden_action_types"`
	RequireDirectCausality      bool     `yaml:"require_direct_causality" json:"require_direct_causality"`
	MinVerificationDepth        int      `yaml:"min_verification_depth" json:"min_verification_depth"`
}

// ProgressiveConfig mirrors light.Options.
type ProgressiveConfig struct {
	MinDepth       int   `yaml:"min_depth" json:"min_depth"`
	MaxAgeMs       int64 `yaml:"max_age_ms" json:"max_age_ms"`
	AutoVerifyFull bool  `yaml:"auto_verify_full" json:"auto_verify_full"`
	SchedulerWorkers int `yaml:"scheduler_workers" json:"scheduler_workers"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Output string `yaml:"output" json:"output"`
}

// MetricsConfig represents metrics server configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Port    int    `yaml:"port" json:"port"`
	Path    string `yaml:"path" json:"path"`
}

// HealthConfig represents health check server configuration.
type HealthConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Port    int  `yaml:"port" json:"port"`
}

// LoadFromFile reads and parses a configuration file, trying YAML first
// and falling back to JSON, then applies defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("failed to parse config file (tried YAML and JSON): %w", err)
		}
	}

	setDefaults(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Agent.DefaultChainDepth == 0 {
		cfg.Agent.DefaultChainDepth = 32
	}
	if cfg.Progressive.MinDepth == 0 {
		cfg.Progressive.MinDepth = 3
	}
	if cfg.Progressive.MaxAgeMs == 0 {
		cfg.Progressive.MaxAgeMs = 300000
	}
	if cfg.Progressive.SchedulerWorkers == 0 {
		cfg.Progressive.SchedulerWorkers = 4
	}
	if cfg.Logging == nil {
		cfg.Logging = &LoggingConfig{Level: "info", Output: "stdout"}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{Enabled: true, Port: 9090, Path: "/metrics"}
	}
	if cfg.Health == nil {
		cfg.Health = &HealthConfig{Enabled: true, Port: 8080}
	}
}

// ValidationIssue is one configuration validation finding.
type ValidationIssue struct {
	Field   string
	Message string
	Level   string // "error" or "warning"
}

// Validate checks cfg for problems that would prevent safe operation.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Agent.ID == "" {
		issues = append(issues, ValidationIssue{Field: "agent.id", Message: "agent identifier must not be empty", Level: "error"})
	}
	if cfg.Agent.DefaultChainDepth < 0 {
		issues = append(issues, ValidationIssue{Field: "agent.default_chain_depth", Message: "must not be negative", Level: "error"})
	}
	if cfg.Progressive.MinDepth < 0 {
		issues = append(issues, ValidationIssue{Field: "progressive.min_depth", Message: "must not be negative", Level: "error"})
	}
	if cfg.Progressive.MaxAgeMs < 0 {
		issues = append(issues, ValidationIssue{Field: "progressive.max_age_ms", Message: "must not be negative", Level: "error"})
	}
	if cfg.Agent.PrivateKeyHex == "" {
		issues = append(issues, ValidationIssue{Field: "agent.private_key_hex", Message: "no private key configured; causal-server signs proofs with an ephemeral key generated at startup", Level: "warning"})
	}

	return issues
}
