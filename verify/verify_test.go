package verify

import (
	"testing"

	"github.com/sage-x-project/causalproof/causal"
	"github.com/sage-x-project/causalproof/crypto/keys"
	"github.com/sage-x-project/causalproof/model"
	"github.com/sage-x-project/causalproof/proof"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSignedProof(t *testing.T) (model.Proof, string, string) {
	t.Helper()
	r, err := causal.New("agent-1")
	require.NoError(t, err)

	a, err := r.RegisterEvent(model.EventInput{AgentID: "agent-1", ActionType: model.ActionRequest, PayloadHash: "0x01", Timestamp: 1000})
	require.NoError(t, err)
	b, err := r.RegisterEvent(model.EventInput{AgentID: "agent-1", ActionType: model.ActionResponse, PayloadHash: "0x02", Predecessor: &a.EventHash, Timestamp: 1100})
	require.NoError(t, err)

	kp, err := keys.GenerateKeyPair()
	require.NoError(t, err)

	p, err := proof.GenerateWithPath(r, r, b.CausalEventID, kp.D, 0)
	require.NoError(t, err)

	return p, "agent-1", keys.EncodePublicKey(kp.X, kp.Y)
}

func TestVerifyValidProof(t *testing.T) {
	p, agentID, pubKey := buildSignedProof(t)
	result := Verify(p, agentID, pubKey, p.TargetEvent.Timestamp+50)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.VerifiedActions)
	assert.Greater(t, result.TrustScore, 0.0)
}

func TestVerifyRejectsWrongAgent(t *testing.T) {
	p, _, pubKey := buildSignedProof(t)
	result := Verify(p, "someone-else", pubKey, p.TargetEvent.Timestamp)
	assert.False(t, result.Valid)
	assert.Zero(t, result.TrustScore)
}

func TestVerifyRejectsWrongPublicKey(t *testing.T) {
	p, agentID, _ := buildSignedProof(t)
	kp2, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	result := Verify(p, agentID, keys.EncodePublicKey(kp2.X, kp2.Y), p.TargetEvent.Timestamp)
	assert.False(t, result.Valid)
}

func TestVerifyRejectsTamperedEventHash(t *testing.T) {
	p, agentID, pubKey := buildSignedProof(t)
	p.TargetEvent.EventHash = "0xdeadbeef"
	result := Verify(p, agentID, pubKey, p.TargetEvent.Timestamp)
	assert.False(t, result.Valid)
}

func TestVerifyRejectsBrokenChain(t *testing.T) {
	p, agentID, pubKey := buildSignedProof(t)
	p.CausalChain[1].PredecessorHash = nil
	result := Verify(p, agentID, pubKey, p.TargetEvent.Timestamp)
	assert.False(t, result.Valid)
	assert.Zero(t, result.VerifiedActions)
}

func TestVerifyTrustScoreDecaysWithAge(t *testing.T) {
	p, agentID, pubKey := buildSignedProof(t)
	fresh := Verify(p, agentID, pubKey, p.TargetEvent.Timestamp)
	old := Verify(p, agentID, pubKey, p.TargetEvent.Timestamp+600000)
	assert.True(t, fresh.TrustScore > old.TrustScore)
}
