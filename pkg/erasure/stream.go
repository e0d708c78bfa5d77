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

import "fmt"

// Stream is a Reed-Solomon codeword together with what is needed to decode
// it. Columns[i] holds the bytes of column i for every row; Valid[i] says
// whether those bytes are present and trusted.
type Stream struct {
	// Length is the size of the original data, used to drop padding.
	Length int `json:"length" yaml:"length"`

	// Encoding is the code the columns were produced with.
	Encoding Encoding `json:"encoding" yaml:"encoding"`

	// Columns has Encoding.Total() entries of RowCount() bytes each.
	// Invalid columns may be nil.
	Columns [][]byte `json:"columns" yaml:"columns"`

	// Valid is parallel to Columns.
	Valid []bool `json:"valid" yaml:"valid"`
}

// NewStream returns an empty stream for the given encoding and original
// length with every column marked invalid. Callers fill in the columns they
// hold and mark them valid with SetColumn.
func NewStream(enc Encoding, length int) (*Stream, error) {
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrMalformedStream, length)
	}
	return &Stream{
		Length:   length,
		Encoding: enc,
		Columns:  make([][]byte, enc.Total()),
		Valid:    make([]bool, enc.Total()),
	}, nil
}

// RowCount returns the number of bytes in every column.
func (s *Stream) RowCount() int {
	return s.Encoding.RowCount(s.Length)
}

// SetColumn stores a copy of data as column i and marks it valid.
func (s *Stream) SetColumn(i int, data []byte) error {
	if i < 0 || i >= len(s.Columns) {
		return fmt.Errorf("%w: column %d out of range [0, %d)", ErrMalformedStream, i, len(s.Columns))
	}
	if len(data) != s.RowCount() {
		return fmt.Errorf("%w: column %d has %d bytes, want %d", ErrMalformedStream, i, len(data), s.RowCount())
	}
	col := make([]byte, len(data))
	copy(col, data)
	s.Columns[i] = col
	s.Valid[i] = true
	return nil
}

// Erase marks the given columns invalid. Out of range indices are ignored.
func (s *Stream) Erase(cols ...int) {
	for _, c := range cols {
		if c >= 0 && c < len(s.Valid) {
			s.Valid[c] = false
		}
	}
}

// ValidCount returns the number of columns marked valid.
func (s *Stream) ValidCount() int {
	n := 0
	for _, v := range s.Valid {
		if v {
			n++
		}
	}
	return n
}

// ValidIndices returns the indices of valid columns in ascending order.
func (s *Stream) ValidIndices() []int {
	idx := make([]int, 0, len(s.Valid))
	for i, v := range s.Valid {
		if v {
			idx = append(idx, i)
		}
	}
	return idx
}

// Clone returns a deep copy of the stream.
func (s *Stream) Clone() *Stream {
	out := &Stream{
		Length:   s.Length,
		Encoding: s.Encoding,
		Columns:  make([][]byte, len(s.Columns)),
		Valid:    make([]bool, len(s.Valid)),
	}
	for i, col := range s.Columns {
		if col != nil {
			out.Columns[i] = append([]byte(nil), col...)
		}
	}
	copy(out.Valid, s.Valid)
	return out
}

// check verifies the stream's shape against its encoding.
func (s *Stream) check() error {
	if err := s.Encoding.Validate(); err != nil {
		return err
	}
	if s.Length < 0 {
		return fmt.Errorf("%w: negative length %d", ErrMalformedStream, s.Length)
	}
	total := s.Encoding.Total()
	if len(s.Columns) != total {
		return fmt.Errorf("%w: %d columns, want %d", ErrMalformedStream, len(s.Columns), total)
	}
	if len(s.Valid) != total {
		return fmt.Errorf("%w: %d validity flags, want %d", ErrMalformedStream, len(s.Valid), total)
	}
	rows := s.RowCount()
	for i, col := range s.Columns {
		if s.Valid[i] && len(col) != rows {
			return fmt.Errorf("%w: column %d has %d bytes, want %d", ErrMalformedStream, i, len(col), rows)
		}
	}
	return nil
}
