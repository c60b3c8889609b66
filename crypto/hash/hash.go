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

// Package hash provides the single hash primitive the rest of the log
// depends on: SHA3-256 over an exact, reproducible byte stream. The
// encoding recipe in Concat is a compatibility contract — any
// reimplementation must emit the identical byte stream or digests
// computed elsewhere will stop validating against this one.
package hash

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// separator is the literal two-byte field separator, appended after
// every part including the last.
var separator = []byte{0x7C, 0x7C}

// nullMarker is the literal four-byte stand-in for an absent part.
var nullMarker = []byte("null")

// Digest is a 32-byte SHA3-256 output.
type Digest [32]byte

// Sum3 hashes raw bytes and returns the raw 32-byte digest.
func Sum3(input []byte) Digest {
	return sha3.Sum256(input)
}

// Hex renders a digest as a lowercase 0x-prefixed hex string.
func (d Digest) Hex() string {
	return "0x" + hex.EncodeToString(d[:])
}

// String satisfies fmt.Stringer.
func (d Digest) String() string {
	return d.Hex()
}

// SHA3 hashes a UTF-8 string and returns its 0x-prefixed hex digest.
func SHA3(input string) string {
	d := Sum3([]byte(input))
	return d.Hex()
}

// Part is one component fed to Concat: either a UTF-8 string, raw bytes,
// or — when Null is true — the literal four-byte "null" marker for an
// absent value.
type Part struct {
	Bytes []byte
	Null  bool
}

// S wraps a string part.
func S(s string) Part { return Part{Bytes: []byte(s)} }

// B wraps a raw-byte part.
func B(b []byte) Part { return Part{Bytes: b} }

// Absent is the literal-null part.
func Absent() Part { return Part{Null: true} }

// Concat implements sha3_concat: join every part with the literal two-byte
// separator 0x7C 0x7C, appended after every part including the last, then
// SHA3-256 the result.
func Concat(parts ...Part) Digest {
	var buf []byte
	for _, p := range parts {
		if p.Null {
			buf = append(buf, nullMarker...)
		} else {
			buf = append(buf, p.Bytes...)
		}
		buf = append(buf, separator...)
	}
	return Sum3(buf)
}

// ConcatHex is Concat rendered straight to a 0x-prefixed hex string.
func ConcatHex(parts ...Part) string {
	return Concat(parts...).Hex()
}
