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

package erasure

import (
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-rsphrase/pkg/matrix"
)

// Decode rebuilds the original data from the valid columns of s. It fails
// with ErrInsufficientShares, before doing any arithmetic, when fewer than
// DataChunks columns are valid. The stream is not modified.
func Decode(s *Stream) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil stream", ErrMalformedStream)
	}
	if err := s.check(); err != nil {
		return nil, err
	}

	k := s.Encoding.DataChunks
	valid := s.ValidIndices()
	if len(valid) < k {
		return nil, fmt.Errorf("%w: need %d valid columns, have %d", ErrInsufficientShares, k, len(valid))
	}
	picked := valid[:k]

	rows := s.RowCount()
	out := make([]byte, rows*k)

	if picked[k-1] == k-1 {
		// All data columns survived.
		for r := 0; r < rows; r++ {
			for c := 0; c < k; c++ {
				out[r*k+c] = s.Columns[c][r]
			}
		}
		return out[:s.Length], nil
	}

	decoder, err := decodeMatrix(s.Encoding, picked)
	if err != nil {
		return nil, err
	}

	vec := make([]byte, k)
	for r := 0; r < rows; r++ {
		for i, c := range picked {
			vec[i] = s.Columns[c][r]
		}
		row, err := decoder.MulVec(vec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		copy(out[r*k:], row)
	}
	return out[:s.Length], nil
}

// decodeMatrix returns the inverse of the generator rows for the picked
// columns. Multiplying it with the picked column bytes of a row yields the
// row's data bytes.
func decodeMatrix(enc Encoding, picked []int) (*matrix.Matrix, error) {
	g, err := Generator(enc)
	if err != nil {
		return nil, err
	}
	sub, err := g.SubMatrix(picked)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	inv, err := sub.Invert()
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, fmt.Errorf("%w: columns %v: %w", ErrInternal, picked, err)
		}
		return nil, err
	}
	return inv, nil
}
