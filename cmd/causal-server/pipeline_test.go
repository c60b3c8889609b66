package main

import (
	"testing"

	"github.com/sage-x-project/causalproof/config"
	"github.com/sage-x-project/causalproof/crypto/keys"
	"github.com/sage-x-project/causalproof/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipelineGeneratesEphemeralKeyWhenNoneConfigured(t *testing.T) {
	cfg := &config.Config{Agent: config.AgentConfig{ID: "agent-1"}}
	pl, err := newPipeline(cfg, logger.NewDefaultLogger())
	require.NoError(t, err)
	defer pl.close()

	assert.NotEmpty(t, pl.publicKey)
	assert.NotNil(t, pl.signingD)
}

func TestNewPipelineUsesConfiguredKey(t *testing.T) {
	first, err := newPipeline(&config.Config{Agent: config.AgentConfig{ID: "agent-1"}}, logger.NewDefaultLogger())
	require.NoError(t, err)
	defer first.close()

	cfg := &config.Config{Agent: config.AgentConfig{
		ID:            "agent-2",
		PrivateKeyHex: keys.EncodePrivateKey(first.signingD),
	}}
	second, err := newPipeline(cfg, logger.NewDefaultLogger())
	require.NoError(t, err)
	defer second.close()

	assert.Equal(t, first.publicKey, second.publicKey)
}
