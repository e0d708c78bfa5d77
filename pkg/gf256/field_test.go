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

package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesAreConsistent(t *testing.T) {
	initTables()

	assert.Equal(t, byte(0), logTable[1], "log[1] must be 0")
	for x := 1; x < 256; x++ {
		assert.Equal(t, byte(x), expTable[logTable[x]], "exp[log[%d]]", x)
	}
}

func TestGeneratorEnumeratesField(t *testing.T) {
	seen := make(map[byte]bool, Order)
	for i := 0; i < Order; i++ {
		seen[Exp(Generator, i)] = true
	}
	assert.Len(t, seen, Order)
	assert.False(t, seen[0])
}

func TestAdd(t *testing.T) {
	for a := 0; a < 256; a++ {
		x := byte(a)
		assert.Equal(t, x, Add(x, 0), "zero is the additive identity")
		assert.Equal(t, byte(0), Add(x, x), "every element is its own negation")
	}
	assert.Equal(t, Add(0x7C, 0xF1), Sub(0x7C, 0xF1))
}

func TestMulIdentityAndZero(t *testing.T) {
	for a := 0; a < 256; a++ {
		x := byte(a)
		assert.Equal(t, x, Mul(x, 1))
		assert.Equal(t, x, Mul(1, x))
		assert.Equal(t, byte(0), Mul(x, 0))
		assert.Equal(t, byte(0), Mul(0, x))
	}
}

func TestMulMatchesDirect(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			if Mul(byte(a), byte(b)) != MulDirect(byte(a), byte(b)) {
				t.Fatalf("Mul(%d, %d) = %d, MulDirect = %d",
					a, b, Mul(byte(a), byte(b)), MulDirect(byte(a), byte(b)))
			}
		}
	}
}

func TestMulCommutative(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := a; b < 256; b++ {
			if Mul(byte(a), byte(b)) != Mul(byte(b), byte(a)) {
				t.Fatalf("Mul not commutative at (%d, %d)", a, b)
			}
		}
	}
}

func TestKnownProducts(t *testing.T) {
	// FIPS-197 section 4.2 example.
	assert.Equal(t, byte(0xC1), Mul(0x57, 0x83))
	assert.Equal(t, byte(0xFE), Mul(0x57, 0x13))
}

func TestInv(t *testing.T) {
	for a := 1; a < 256; a++ {
		inv, err := Inv(byte(a))
		require.NoError(t, err)
		assert.NotZero(t, inv)
		assert.Equal(t, byte(1), Mul(byte(a), inv), "a * inv(a) for a=%d", a)
	}

	_, err := Inv(0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestDiv(t *testing.T) {
	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			z := Mul(byte(a), byte(b))
			q, err := Div(z, byte(a))
			require.NoError(t, err)
			if q != byte(b) {
				t.Fatalf("(%d*%d)/%d = %d", a, b, a, q)
			}
		}
	}

	q, err := Div(0, 7)
	require.NoError(t, err)
	assert.Equal(t, byte(0), q)

	_, err = Div(7, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestExp(t *testing.T) {
	tests := []struct {
		name string
		a    byte
		n    int
		want byte
	}{
		{"zero to the zero", 0, 0, 1},
		{"zero to a power", 0, 5, 0},
		{"anything to the zero", 0x53, 0, 1},
		{"first power", 0x53, 1, 0x53},
		{"square", 0x03, 2, 0x05},
		{"group order wraps", 0x53, Order, 1},
		{"negative is inverse", 0x53, -1, 0xCA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Exp(tt.a, tt.n))
		})
	}
}

func BenchmarkMul(b *testing.B) {
	var acc byte
	for i := 0; i < b.N; i++ {
		acc ^= Mul(byte(i), byte(i>>8))
	}
	_ = acc
}

func BenchmarkMulDirect(b *testing.B) {
	var acc byte
	for i := 0; i < b.N; i++ {
		acc ^= MulDirect(byte(i), byte(i>>8))
	}
	_ = acc
}
