package main

import (
	"testing"

	"github.com/sage-x-project/causalproof/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTargets(t *testing.T) {
	assert.Equal(t, []string{"a"}, splitTargets("a"))
	assert.Equal(t, []string{"a", "b", "c"}, splitTargets("a, b ,c"))
	assert.Equal(t, []string{}, splitTargets(""))
}

func TestRenderProofsJoinsWithNewline(t *testing.T) {
	proveRaw = false
	out, err := renderProofs([]model.Proof{
		{TreeRootHash: "0x01", AgentSignature: "sig1"},
		{TreeRootHash: "0x02", AgentSignature: "sig2"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "\n")
}

func TestRenderProofsRawOutputsJSON(t *testing.T) {
	proveRaw = true
	defer func() { proveRaw = false }()

	out, err := renderProofs([]model.Proof{{TreeRootHash: "0x01", AgentSignature: "sig1"}})
	require.NoError(t, err)
	assert.Contains(t, out, "treeRootHash")
}
