package health

import (
	"testing"

	"github.com/sage-x-project/causalproof/causal"
	"github.com/sage-x-project/causalproof/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAllWithoutRegistry(t *testing.T) {
	c := NewChecker(nil)
	result := c.CheckAll()
	assert.Equal(t, StatusHealthy, result.Status)
	assert.True(t, result.Crypto.SecureRandomOK)
	assert.Nil(t, result.Registry)
}

func TestCheckAllWithRegistry(t *testing.T) {
	r, err := causal.New("agent-1")
	require.NoError(t, err)
	_, err = r.RegisterEvent(model.EventInput{AgentID: "agent-1", ActionType: model.ActionRequest, PayloadHash: "0x01", Timestamp: 1})
	require.NoError(t, err)

	c := NewChecker(r)
	result := c.CheckAll()
	require.NotNil(t, result.Registry)
	assert.Equal(t, "agent-1", result.Registry.AgentID)
	assert.Equal(t, 1, result.Registry.EventCount)
	assert.Equal(t, r.RootHash(), result.Registry.RootHash)
}
