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

// Package matrix provides dense matrices over GF(256) with the operations
// needed by the erasure coder: products, Gauss-Jordan inversion and
// Vandermonde construction.
package matrix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-rsphrase/pkg/gf256"
)

var (
	// ErrDimensionMismatch is returned when operand shapes are incompatible
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrSingular is returned when a matrix has no inverse
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrInvalidShape is returned for empty or ragged input
	ErrInvalidShape = errors.New("matrix: invalid shape")
)

// Matrix is a rows x cols array of field elements stored row-major.
type Matrix struct {
	rows int
	cols int
	data []byte
}

// New returns a zero matrix.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]byte, rows*cols),
	}, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m, nil
}

// FromRows builds a matrix from a slice of equally sized rows. The input is
// copied.
func FromRows(rows [][]byte) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidShape)
	}
	m, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrInvalidShape, i, len(row), m.cols)
		}
		copy(m.Row(i), row)
	}
	return m, nil
}

// Vandermonde returns the len(points) x cols matrix whose row i is
// [1, p_i, p_i^2, ..., p_i^(cols-1)]. Any square selection of rows is
// invertible when the points are distinct.
func Vandermonde(points []byte, cols int) (*Matrix, error) {
	m, err := New(len(points), cols)
	if err != nil {
		return nil, err
	}
	for i, p := range points {
		for j := 0; j < cols; j++ {
			m.Set(i, j, gf256.Exp(p, j))
		}
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row r, column c.
func (m *Matrix) At(r, c int) byte {
	return m.data[r*m.cols+c]
}

// Set stores v at row r, column c.
func (m *Matrix) Set(r, c int, v byte) {
	m.data[r*m.cols+c] = v
}

// Row returns row r. The slice aliases the matrix storage.
func (m *Matrix) Row(r int) []byte {
	return m.data[r*m.cols : (r+1)*m.cols]
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]byte, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Equal reports whether both matrices have the same shape and elements.
func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Multiply returns the product m * other.
func (m *Matrix) Multiply(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, fmt.Errorf("%w: %dx%d * %dx%d",
			ErrDimensionMismatch, m.rows, m.cols, other.rows, other.cols)
	}
	res := &Matrix{rows: m.rows, cols: other.cols, data: make([]byte, m.rows*other.cols)}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			var v byte
			for k := 0; k < m.cols; k++ {
				v ^= gf256.Mul(m.At(i, k), other.At(k, j))
			}
			res.Set(i, j, v)
		}
	}
	return res, nil
}

// MulVec returns m * v for a column vector v of length Cols.
func (m *Matrix) MulVec(v []byte) ([]byte, error) {
	if len(v) != m.cols {
		return nil, fmt.Errorf("%w: %dx%d * vector of %d",
			ErrDimensionMismatch, m.rows, m.cols, len(v))
	}
	out := make([]byte, m.rows)
	for i := 0; i < m.rows; i++ {
		row := m.Row(i)
		var acc byte
		for k, x := range v {
			acc ^= gf256.Mul(row[k], x)
		}
		out[i] = acc
	}
	return out, nil
}

// SubMatrix returns a matrix made of the given rows, in order.
func (m *Matrix) SubMatrix(rows []int) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows selected", ErrInvalidShape)
	}
	res := &Matrix{rows: len(rows), cols: m.cols, data: make([]byte, len(rows)*m.cols)}
	for i, r := range rows {
		if r < 0 || r >= m.rows {
			return nil, fmt.Errorf("%w: row %d out of range [0, %d)",
				ErrDimensionMismatch, r, m.rows)
		}
		copy(res.Row(i), m.Row(r))
	}
	return res, nil
}

// Transpose returns the transposed matrix.
func (m *Matrix) Transpose() *Matrix {
	res := &Matrix{rows: m.cols, cols: m.rows, data: make([]byte, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			res.Set(j, i, m.At(i, j))
		}
	}
	return res
}

// Invert returns the inverse of a square matrix using Gauss-Jordan
// elimination on [m | I].
func (m *Matrix) Invert() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("%w: cannot invert %dx%d", ErrDimensionMismatch, m.rows, m.cols)
	}
	n := m.rows
	work := m.Clone()
	inv, _ := Identity(n)

	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if work.At(r, col) != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return nil, fmt.Errorf("%w: no pivot in column %d", ErrSingular, col)
		}
		if pivot != col {
			work.swapRows(pivot, col)
			inv.swapRows(pivot, col)
		}

		scale, err := gf256.Inv(work.At(col, col))
		if err != nil {
			return nil, err
		}
		work.scaleRow(col, scale)
		inv.scaleRow(col, scale)

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := work.At(r, col)
			if f == 0 {
				continue
			}
			work.addScaledRow(col, r, f)
			inv.addScaledRow(col, r, f)
		}
	}
	return inv, nil
}

func (m *Matrix) swapRows(a, b int) {
	ra, rb := m.Row(a), m.Row(b)
	for i := range ra {
		ra[i], rb[i] = rb[i], ra[i]
	}
}

func (m *Matrix) scaleRow(r int, f byte) {
	row := m.Row(r)
	for i := range row {
		row[i] = gf256.Mul(row[i], f)
	}
}

// addScaledRow adds f * row[src] into row[dst].
func (m *Matrix) addScaledRow(src, dst int, f byte) {
	s, d := m.Row(src), m.Row(dst)
	for i := range d {
		d[i] ^= gf256.Mul(s[i], f)
	}
}

// String renders the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d", m.At(i, j))
		}
	}
	return sb.String()
}
