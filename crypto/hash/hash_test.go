package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA3Vectors(t *testing.T) {
	assert.Equal(t, "0xa7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a", SHA3(""))
	assert.Equal(t, "0x3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532", SHA3("abc"))
}

func TestConcatDeterministic(t *testing.T) {
	a := ConcatHex(S("agent-1"), S("request"), S("0xdead"), Absent(), S("1000"))
	b := ConcatHex(S("agent-1"), S("request"), S("0xdead"), Absent(), S("1000"))
	assert.Equal(t, a, b)

	c := ConcatHex(S("agent-1"), S("request"), S("0xdead"), S("0xpred"), S("1000"))
	assert.NotEqual(t, a, c)
}

func TestConcatNullMarkerMatchesLiteralString(t *testing.T) {
	withAbsent := ConcatHex(S("x"), Absent())
	withLiteral := ConcatHex(S("x"), S("null"))
	// Both produce the same bytes ("null" || "||"), by construction, but
	// the point of Absent() is that callers never have to spell "null"
	// themselves and risk a mismatch with a real predecessor digest that
	// happens to be that string.
	assert.Equal(t, withLiteral, withAbsent)
}

func TestDigestHexRoundtrip(t *testing.T) {
	d := Sum3([]byte("abc"))
	assert.Len(t, d.Hex(), 2+64)
	assert.Equal(t, d.Hex(), d.String())
}
