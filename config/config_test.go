package config

import (
	"os"
	"testing"
)

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "development")
	}
	if cfg.Agent.DefaultChainDepth != 32 {
		t.Errorf("DefaultChainDepth = %d, want 32", cfg.Agent.DefaultChainDepth)
	}
	if cfg.Progressive.MinDepth != 3 {
		t.Errorf("MinDepth = %d, want 3", cfg.Progressive.MinDepth)
	}
	if cfg.Progressive.MaxAgeMs != 300000 {
		t.Errorf("MaxAgeMs = %d, want 300000", cfg.Progressive.MaxAgeMs)
	}
	if cfg.Logging == nil || cfg.Logging.Level != "info" {
		t.Error("Logging defaults were not applied")
	}
	if cfg.Metrics == nil || cfg.Metrics.Port != 9090 {
		t.Error("Metrics defaults were not applied")
	}
	if cfg.Health == nil || cfg.Health.Port != 8080 {
		t.Error("Health defaults were not applied")
	}
}

func TestSetDefaultsDoesNotOverrideExplicitValues(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		Agent:       AgentConfig{DefaultChainDepth: 8},
	}
	setDefaults(cfg)

	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "production")
	}
	if cfg.Agent.DefaultChainDepth != 8 {
		t.Errorf("DefaultChainDepth = %d, want 8", cfg.Agent.DefaultChainDepth)
	}
}

func TestValidateFlagsMissingAgentID(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	issues := Validate(cfg)

	found := false
	for _, issue := range issues {
		if issue.Field == "agent.id" && issue.Level == "error" {
			found = true
		}
	}
	if !found {
		t.Error("expected a validation error for missing agent.id")
	}
}

func TestValidatePassesWithAgentID(t *testing.T) {
	cfg := &Config{Agent: AgentConfig{ID: "agent-1", PrivateKeyHex: "0xabc"}}
	setDefaults(cfg)
	issues := Validate(cfg)

	for _, issue := range issues {
		if issue.Level == "error" {
			t.Errorf("unexpected validation error: %s - %s", issue.Field, issue.Message)
		}
	}
}

func TestLoadFromFileParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	content := []byte("environment: staging\nagent:\n  id: agent-7\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile returned error: %v", err)
	}
	if cfg.Environment != "staging" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "staging")
	}
	if cfg.Agent.ID != "agent-7" {
		t.Errorf("Agent.ID = %q, want %q", cfg.Agent.ID, "agent-7")
	}
}

func TestLoadFromFileParsesJSONFallback(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.json"
	content := []byte(`{"environment":"test","agent":{"id":"agent-json"}}`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile returned error: %v", err)
	}
	if cfg.Agent.ID != "agent-json" {
		t.Errorf("Agent.ID = %q, want %q", cfg.Agent.ID, "agent-json")
	}
}

func TestLoadFromFileMissingFile(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
