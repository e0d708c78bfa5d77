// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-rsphrase.
//
// go-rsphrase is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package gf256 implements arithmetic in the finite field GF(2^8).
//
// Elements are bytes interpreted as polynomials over GF(2) reduced by the
// AES polynomial x^8 + x^4 + x^3 + x + 1 (0x11B). Addition and subtraction
// are XOR. Multiplication, division and inversion go through logarithm and
// exponent tables generated once from the generator 3.
//
// Table lookups are not constant time. Do not use this package where
// secret-dependent timing matters.
package gf256

import (
	"errors"
	"sync"
)

const (
	// Polynomial is the irreducible polynomial defining the field.
	Polynomial = 0x11B

	// Generator is a primitive element: its powers 0..254 enumerate every
	// nonzero element exactly once.
	Generator = 0x03

	// Order is the size of the multiplicative group.
	Order = 255
)

// ErrDivisionByZero is returned when zero is used as a divisor or inverted.
var ErrDivisionByZero = errors.New("gf256: division by zero")

var (
	expTable  [256]byte
	logTable  [256]byte
	tableOnce sync.Once
)

func initTables() {
	tableOnce.Do(func() {
		var x byte = 1
		for i := 0; i < Order; i++ {
			expTable[i] = x
			logTable[x] = byte(i)
			x = MulDirect(x, Generator)
		}
		expTable[Order] = expTable[0]
	})
}

// Add returns a + b.
func Add(a, b byte) byte {
	return a ^ b
}

// Sub returns a - b, which is the same as a + b in characteristic 2.
func Sub(a, b byte) byte {
	return a ^ b
}

// Mul returns a * b using the log/exp tables.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	initTables()
	return expTable[(int(logTable[a])+int(logTable[b]))%Order]
}

// Div returns a / b. A zero numerator yields zero.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	initTables()
	return expTable[(int(logTable[a])-int(logTable[b])+Order)%Order], nil
}

// Inv returns the multiplicative inverse of a.
func Inv(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	initTables()
	return expTable[(Order-int(logTable[a]))%Order], nil
}

// Exp returns a raised to the n-th power. Exp(0, 0) is 1. Negative
// exponents of a nonzero a give powers of its inverse.
func Exp(a byte, n int) byte {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	initTables()
	e := (int(logTable[a]) * n) % Order
	if e < 0 {
		e += Order
	}
	return expTable[e]
}

// MulDirect multiplies a and b with the shift-and-reduce method. It agrees
// with Mul for every input and serves as the reference that the tables are
// built from and checked against.
func MulDirect(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		carry := a & 0x80
		a <<= 1
		if carry != 0 {
			a ^= Polynomial & 0xFF
		}
		b >>= 1
	}
	return p
}
