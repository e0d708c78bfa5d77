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

import "github.com/jeremyhahn/go-rsphrase/pkg/gf256"

// Encode splits data into rows of enc.DataChunks bytes, zero padding the
// last row, and returns the all-valid codeword of enc.Total() columns.
func Encode(data []byte, enc Encoding) (*Stream, error) {
	g, err := Generator(enc)
	if err != nil {
		return nil, err
	}

	k := enc.DataChunks
	rows := enc.RowCount(len(data))
	s := &Stream{
		Length:   len(data),
		Encoding: enc,
		Columns:  make([][]byte, enc.Total()),
		Valid:    make([]bool, enc.Total()),
	}
	for i := range s.Columns {
		s.Columns[i] = make([]byte, rows)
		s.Valid[i] = true
	}

	row := make([]byte, k)
	for r := 0; r < rows; r++ {
		clear(row)
		start := r * k
		end := min(start+k, len(data))
		copy(row, data[start:end])

		for c := 0; c < k; c++ {
			s.Columns[c][r] = row[c]
		}
		for c := k; c < enc.Total(); c++ {
			coeffs := g.Row(c)
			var acc byte
			for j, b := range row {
				acc ^= gf256.Mul(coeffs[j], b)
			}
			s.Columns[c][r] = acc
		}
	}
	return s, nil
}
