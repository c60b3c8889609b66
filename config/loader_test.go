package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFallsBackToDefaultsWhenNoFilesExist(t *testing.T) {
	cfg, err := Load(LoaderOptions{
		ConfigDir:      t.TempDir(),
		Environment:    "development",
		SkipValidation: true,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "development")
	}
	if cfg.Agent.DefaultChainDepth != 32 {
		t.Errorf("DefaultChainDepth = %d, want 32", cfg.Agent.DefaultChainDepth)
	}
}

func TestLoadForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "staging", "production"} {
		t.Run(env, func(t *testing.T) {
			cfg, err := Load(LoaderOptions{
				ConfigDir:      t.TempDir(),
				Environment:    env,
				SkipValidation: true,
			})
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if cfg.Environment != env {
				t.Errorf("Environment = %q, want %q", cfg.Environment, env)
			}
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	os.Setenv("CAUSALPROOF_AGENT_ID", "override-agent")
	os.Setenv("CAUSALPROOF_LOG_LEVEL", "debug")
	defer os.Unsetenv("CAUSALPROOF_AGENT_ID")
	defer os.Unsetenv("CAUSALPROOF_LOG_LEVEL")

	cfg, err := Load(LoaderOptions{
		ConfigDir:      t.TempDir(),
		Environment:    "development",
		SkipValidation: true,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Agent.ID != "override-agent" {
		t.Errorf("Agent.ID = %q, want %q", cfg.Agent.ID, "override-agent")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoadWithCustomConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	testConfig := "environment: test\nagent:\n  id: agent-custom\n"
	if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(LoaderOptions{
		ConfigDir:      tmpDir,
		Environment:    "test",
		SkipValidation: true,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Agent.ID != "agent-custom" {
		t.Errorf("Agent.ID = %q, want %q", cfg.Agent.ID, "agent-custom")
	}
}

func TestLoadValidatesConfiguration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "broken.yaml")
	if err := os.WriteFile(configPath, []byte("environment: broken\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(LoaderOptions{
		ConfigDir:   tmpDir,
		Environment: "broken",
	})
	if err == nil {
		t.Error("expected validation failure for a config with no agent id")
	}
}

func TestMustLoadPanicsOnValidationFailure(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustLoad to panic on validation failure")
		}
	}()
	MustLoad(LoaderOptions{ConfigDir: t.TempDir(), Environment: "broken"})
}
