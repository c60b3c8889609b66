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

// Package cryptoinit gates process startup on a working secure random
// source. Identifier allocation (crypto/ident) and private-key generation
// (crypto/keys) both require one; per the randomness requirement, a
// platform without one must fail loudly at startup rather than let every
// later call degrade silently.
package cryptoinit

import (
	"crypto/rand"
	"fmt"
)

// MustHaveSecureRandom panics if the platform's crypto/rand source cannot
// be read. Intended to be called once, early, from a command's main().
func MustHaveSecureRandom() {
	if err := CheckSecureRandom(); err != nil {
		panic(fmt.Sprintf("cryptoinit: %v", err))
	}
}

// CheckSecureRandom reports whether crypto/rand is usable, without
// panicking, for callers (such as the health checker) that want to
// handle the failure themselves.
func CheckSecureRandom() error {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("secure random source unavailable: %w", err)
	}
	return nil
}
