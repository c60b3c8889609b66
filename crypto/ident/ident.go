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

// Package ident generates the time-ordered 128-bit causal event
// identifiers: the version-7 UUID layout of RFC 9562, built byte-for-byte
// rather than through a library's own generator so the bit placement
// matches the spec exactly (top 48 bits are the millisecond timestamp,
// everything else but the version/variant tag is cryptographically
// random).
package ident

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// validator matches the canonical version-7 textual form.
var validator = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// Generate returns a new version-7 identifier for the given millisecond
// timestamp, reading its random bits from crypto/rand. It returns an error
// rather than falling back to a weaker source if the platform's secure
// random source is unavailable.
func Generate(nowMillis int64) (string, error) {
	var u uuid.UUID

	// bytes 0..5: big-endian 48-bit millisecond timestamp.
	ts := uint64(nowMillis) & 0xFFFFFFFFFFFF
	u[0] = byte(ts >> 40)
	u[1] = byte(ts >> 32)
	u[2] = byte(ts >> 24)
	u[3] = byte(ts >> 16)
	u[4] = byte(ts >> 8)
	u[5] = byte(ts)

	// bytes 6..15: cryptographically random, then overlay version/variant.
	if _, err := rand.Read(u[6:]); err != nil {
		return "", fmt.Errorf("ident: secure random source unavailable: %w", err)
	}

	// bits 48..51 (high nibble of byte 6): version 0111.
	u[6] = (u[6] & 0x0F) | 0x70
	// bits 64..65 (top two bits of byte 8): variant 10.
	u[8] = (u[8] & 0x3F) | 0x80

	return u.String(), nil
}

// Valid reports whether s is a syntactically valid version-7 identifier.
func Valid(s string) bool {
	return validator.MatchString(strings.ToLower(s))
}

// Timestamp extracts the embedded millisecond timestamp from a version-7
// identifier by reading its first 12 hex nibbles as a base-16 integer.
// It does not validate the input; call Valid first if that matters.
func Timestamp(id string) (int64, error) {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) < 12 {
		return 0, fmt.Errorf("ident: identifier too short to contain a timestamp: %q", id)
	}
	ms, err := strconv.ParseInt(compact[:12], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("ident: malformed timestamp nibbles: %w", err)
	}
	return ms, nil
}

// Compare orders two identifiers by their lexicographic hex form, which
// equals temporal order because the timestamp occupies the high 48 bits.
// It returns -1, 0, or 1 the way sort.Interface-adjacent code expects.
func Compare(a, b string) int {
	al, bl := strings.ToLower(a), strings.ToLower(b)
	switch {
	case al < bl:
		return -1
	case al > bl:
		return 1
	default:
		return 0
	}
}
