package ident

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFormat(t *testing.T) {
	now := time.Now().UnixMilli()
	id, err := Generate(now)
	require.NoError(t, err)
	assert.True(t, Valid(id), "generated id %q must match the version-7 regex", id)
}

func TestGenerateTimestampRoundtrip(t *testing.T) {
	now := time.Now().UnixMilli()
	id, err := Generate(now)
	require.NoError(t, err)

	ms, err := Timestamp(id)
	require.NoError(t, err)
	assert.InDelta(t, now, ms, 5, "embedded timestamp should match generation time within 5ms")
}

func TestCompareOrdersTemporally(t *testing.T) {
	first, err := Generate(1_000)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := Generate(3_000)
	require.NoError(t, err)

	assert.Equal(t, -1, Compare(first, second))
	assert.Equal(t, 1, Compare(second, first))
	assert.Equal(t, 0, Compare(first, first))
}

func TestValidRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-uuid",
		"00000000-0000-4000-8000-000000000000", // version 4, not 7
		"00000000-0000-7000-0000-000000000000", // bad variant nibble
	}
	for _, c := range cases {
		assert.False(t, Valid(c), "expected %q to be invalid", c)
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := Generate(time.Now().UnixMilli())
		require.NoError(t, err)
		assert.False(t, seen[id], "identifier collision")
		seen[id] = true
	}
}
