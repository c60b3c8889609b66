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

// Package keys implements the secp256k1 ECDSA signature primitive: key
// generation, deterministic signing with low-s canonicalization, parsed
// verification, and public-key recovery. Curve point arithmetic is backed
// by github.com/decred/dcrd/dcrec/secp256k1/v4's KoblitzCurve; everything
// above that (nonce derivation, low-s enforcement, recovery) is built by
// hand so the wire format matches the spec's hex encodings exactly.
package keys

import (
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// curve is the secp256k1 curve parameters and point arithmetic.
var curve = secp256k1.S256()

var (
	n       = curve.Params().N
	halfN   = new(big.Int).Rsh(n, 1)
	zero    = big.NewInt(0)
)

// ErrInvalidSignature is returned by Verify for any malformed or
// cryptographically invalid signature rather than propagating a parse
// error; recoverable primitive failures return sentinels, not panics.
var ErrInvalidSignature = errors.New("keys: invalid signature")

// KeyPair is a parsed secp256k1 private/public key pair.
type KeyPair struct {
	D *big.Int // private scalar
	X *big.Int // public point X
	Y *big.Int // public point Y
}

// GeneratePrivateKey returns a new random scalar in [1, n-1]. It fails
// rather than degrading to a weak source if crypto/rand can't be read.
func GeneratePrivateKey() (*big.Int, error) {
	for {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("keys: secure random source unavailable: %w", err)
		}
		d := new(big.Int).SetBytes(b)
		if d.Sign() > 0 && d.Cmp(n) < 0 {
			return d, nil
		}
	}
}

// PublicKey scalar-multiplies the generator by d.
func PublicKey(d *big.Int) (x, y *big.Int) {
	return curve.ScalarBaseMult(d.Bytes())
}

// GenerateKeyPair generates a fresh key pair.
func GenerateKeyPair() (*KeyPair, error) {
	d, err := GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	x, y := PublicKey(d)
	return &KeyPair{D: d, X: x, Y: y}, nil
}

// EncodePrivateKey hex-encodes a 32-byte scalar with a 0x prefix.
func EncodePrivateKey(d *big.Int) string {
	return "0x" + hex.EncodeToString(leftPad32(d.Bytes()))
}

// DecodePrivateKey parses a 0x-prefixed 32-byte scalar.
func DecodePrivateKey(hexStr string) (*big.Int, error) {
	b, err := decodeHex(hexStr)
	if err != nil {
		return nil, err
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("keys: private key must be 32 bytes, got %d", len(b))
	}
	d := new(big.Int).SetBytes(b)
	if d.Sign() <= 0 || d.Cmp(n) >= 0 {
		return nil, errors.New("keys: private key scalar out of range")
	}
	return d, nil
}

// EncodePublicKey serializes an uncompressed public key: 0x04 || X || Y.
func EncodePublicKey(x, y *big.Int) string {
	buf := make([]byte, 0, 65)
	buf = append(buf, 0x04)
	buf = append(buf, leftPad32(x.Bytes())...)
	buf = append(buf, leftPad32(y.Bytes())...)
	return "0x" + hex.EncodeToString(buf)
}

// DecodePublicKey parses an uncompressed public key and confirms it lies
// on the curve. Returns ok=false on any parse or curve-membership failure,
// per the spec's "parsing failures return false/null" rule.
func DecodePublicKey(hexStr string) (x, y *big.Int, ok bool) {
	b, err := decodeHex(hexStr)
	if err != nil || len(b) != 65 || b[0] != 0x04 {
		return nil, nil, false
	}
	x = new(big.Int).SetBytes(b[1:33])
	y = new(big.Int).SetBytes(b[33:65])
	if !curve.IsOnCurve(x, y) {
		return nil, nil, false
	}
	return x, y, true
}

// Sign signs a 32-byte message digest with a deterministic nonce derived
// via a simplified RFC 6979 HMAC-DRBG, enforcing BIP-62 low-s
// canonicalization. Returns 0x || r || s, each 32 bytes.
func Sign(messageHash []byte, d *big.Int) (string, error) {
	z := hashToInt(messageHash)

	for counter := 0; ; counter++ {
		k := deterministicNonce(d, messageHash, counter)
		if k.Sign() == 0 {
			continue
		}

		rx, _ := curve.ScalarBaseMult(k.Bytes())
		r := new(big.Int).Mod(rx, n)
		if r.Sign() == 0 {
			continue
		}

		kInv := new(big.Int).ModInverse(k, n)
		if kInv == nil {
			continue
		}
		s := new(big.Int).Mul(r, d)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, n)
		if s.Sign() == 0 {
			continue
		}

		// Enforce low-s (BIP-62): if s > n/2, replace with n - s.
		if s.Cmp(halfN) > 0 {
			s = new(big.Int).Sub(n, s)
		}

		sig := make([]byte, 0, 64)
		sig = append(sig, leftPad32(r.Bytes())...)
		sig = append(sig, leftPad32(s.Bytes())...)
		return "0x" + hex.EncodeToString(sig), nil
	}
}

// Verify checks a signature against a message digest and an uncompressed
// public key. It returns false for every failure mode — malformed inputs,
// out-of-range scalars, high-s malleable signatures, or a genuine
// cryptographic mismatch — rather than propagating an error.
func Verify(messageHash []byte, sigHex string, pubKeyHex string) bool {
	r, s, ok := decodeSignature(sigHex)
	if !ok {
		return false
	}
	if r.Sign() <= 0 || r.Cmp(n) >= 0 || s.Sign() <= 0 || s.Cmp(n) >= 0 {
		return false
	}
	if s.Cmp(halfN) > 0 {
		return false // BIP-62 malleability rejection
	}

	x, y, ok := DecodePublicKey(pubKeyHex)
	if !ok {
		return false
	}

	z := hashToInt(messageHash)

	sInv := new(big.Int).ModInverse(s, n)
	if sInv == nil {
		return false
	}
	u1 := new(big.Int).Mul(z, sInv)
	u1.Mod(u1, n)
	u2 := new(big.Int).Mul(r, sInv)
	u2.Mod(u2, n)

	x1, y1 := curve.ScalarBaseMult(u1.Bytes())
	x2, y2 := curve.ScalarMult(x, y, u2.Bytes())
	px, py := curve.Add(x1, y1, x2, y2)

	if px.Sign() == 0 && py.Sign() == 0 {
		return false // point at infinity
	}
	px.Mod(px, n)
	return px.Cmp(r) == 0
}

// RecoverPublicKey recovers the candidate public key from r using the
// recovery bit to disambiguate y's parity. Returns nil if the recovered
// point is not on-curve or the inputs are malformed.
func RecoverPublicKey(messageHash []byte, sigHex string, recoveryID int) (x, y *big.Int) {
	if recoveryID != 0 && recoveryID != 1 {
		return nil, nil
	}
	r, s, ok := decodeSignature(sigHex)
	if !ok {
		return nil, nil
	}
	if r.Sign() <= 0 || r.Cmp(n) >= 0 || s.Sign() <= 0 || s.Cmp(n) >= 0 {
		return nil, nil
	}

	p := curve.Params().P
	rx := new(big.Int).Set(r)

	// y^2 = x^3 + 7 mod p
	ySq := new(big.Int).Exp(rx, big.NewInt(3), p)
	ySq.Add(ySq, big.NewInt(7))
	ySq.Mod(ySq, p)

	ry := new(big.Int).ModSqrt(ySq, p)
	if ry == nil {
		return nil, nil // x is not on-curve
	}

	wantOdd := recoveryID == 1
	isOdd := ry.Bit(0) == 1
	if wantOdd != isOdd {
		ry = new(big.Int).Sub(p, ry)
	}

	if !curve.IsOnCurve(rx, ry) {
		return nil, nil
	}

	z := hashToInt(messageHash)

	rInv := new(big.Int).ModInverse(rx, n)
	if rInv == nil {
		return nil, nil
	}

	sRx, sRy := curve.ScalarMult(rx, ry, s.Bytes())
	eGx, eGy := curve.ScalarBaseMult(new(big.Int).Mod(z, n).Bytes())
	negEGy := new(big.Int).Sub(p, eGy)
	negEGy.Mod(negEGy, p)

	sumX, sumY := curve.Add(sRx, sRy, eGx, negEGy)
	qx, qy := curve.ScalarMult(sumX, sumY, rInv.Bytes())

	if !curve.IsOnCurve(qx, qy) {
		return nil, nil
	}
	return qx, qy
}

// --- internals ---

func decodeSignature(sigHex string) (r, s *big.Int, ok bool) {
	b, err := decodeHex(sigHex)
	if err != nil || len(b) != 64 {
		return nil, nil, false
	}
	return new(big.Int).SetBytes(b[:32]), new(big.Int).SetBytes(b[32:]), true
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	return hex.DecodeString(s)
}

func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// hashToInt turns a message digest into an integer modulo n, truncating
// from the left the way FIPS 186-style ECDSA does for oversized digests.
func hashToInt(hashBytes []byte) *big.Int {
	orderBits := n.BitLen()
	z := new(big.Int).SetBytes(hashBytes)
	if excess := len(hashBytes)*8 - orderBits; excess > 0 {
		z.Rsh(z, uint(excess))
	}
	return z
}

// deterministicNonce derives a per-signature nonce from the private key,
// message digest, and a retry counter using an HMAC-SHA256 DRBG in the
// spirit of RFC 6979: deterministic so repeated signing of the same
// message never reuses randomness from a possibly-broken RNG, and the
// retry counter gives each retry a different, still deterministic, nonce.
func deterministicNonce(d *big.Int, messageHash []byte, counter int) *big.Int {
	key := make([]byte, 0, 32+len(messageHash)+8)
	key = append(key, leftPad32(d.Bytes())...)
	key = append(key, messageHash...)
	key = append(key, byte(counter>>24), byte(counter>>16), byte(counter>>8), byte(counter))

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte("causalproof-ecdsa-nonce"))
	sum := mac.Sum(nil)

	k := new(big.Int).SetBytes(sum)
	k.Mod(k, n)
	return k
}

// assert elliptic.Curve is satisfied (compile-time documentation only).
var _ elliptic.Curve = curve
