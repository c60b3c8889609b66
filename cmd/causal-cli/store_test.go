package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sage-x-project/causalproof/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistryOnMissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	reg, err := loadRegistry(filepath.Join(dir, "events.jsonl"), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Count())
	assert.Equal(t, "agent-1", reg.AgentID())
}

func TestAppendThenLoadReplaysEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")

	first := model.EventInput{AgentID: "agent-1", ActionType: model.ActionRequest, PayloadHash: "0x01", Timestamp: 1}
	require.NoError(t, appendEvent(path, first))

	reg, err := loadRegistry(path, "agent-1")
	require.NoError(t, err)
	require.Equal(t, 1, reg.Count())

	firstEvent, ok := reg.GetByDigest(reg.LastEventHash())
	require.True(t, ok)

	predecessor := firstEvent.EventHash
	second := model.EventInput{
		AgentID:     "agent-1",
		ActionType:  model.ActionResponse,
		PayloadHash: "0x02",
		Predecessor: &predecessor,
		Timestamp:   2,
	}
	require.NoError(t, appendEvent(path, second))

	reg2, err := loadRegistry(path, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 2, reg2.Count())
	assert.NotEqual(t, reg.RootHash(), reg2.RootHash())
}

func TestLoadRegistryRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not valid json\n"), 0644))

	_, err := loadRegistry(path, "agent-1")
	assert.Error(t, err)
}
