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
	"fmt"
	"strconv"
	"strings"
)

// MaxChunks is the largest number of columns a code can have. Each column
// is evaluated at its own index, which must fit in one field element.
const MaxChunks = 256

// Encoding describes how many columns carry data and how many carry parity.
// Any DataChunks of the Total columns are enough to rebuild the data.
type Encoding struct {
	DataChunks int `json:"data_chunks" yaml:"data_chunks"`
	CodeChunks int `json:"code_chunks" yaml:"code_chunks"`
}

// NewEncoding returns a validated Encoding.
func NewEncoding(dataChunks, codeChunks int) (Encoding, error) {
	enc := Encoding{DataChunks: dataChunks, CodeChunks: codeChunks}
	if err := enc.Validate(); err != nil {
		return Encoding{}, err
	}
	return enc, nil
}

// ParseEncoding reads the "rs=N.M" form, where N is the number of data
// chunks and M the number of code chunks, i.e. how many columns may be
// lost.
func ParseEncoding(s string) (Encoding, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "rs=")
	if !ok {
		return Encoding{}, fmt.Errorf("%w: %q must start with \"rs=\"", ErrInvalidEncoding, s)
	}
	parts := strings.Split(rest, ".")
	if len(parts) != 2 {
		return Encoding{}, fmt.Errorf("%w: %q must have the form rs=N.M", ErrInvalidEncoding, s)
	}
	data, err := strconv.Atoi(parts[0])
	if err != nil {
		return Encoding{}, fmt.Errorf("%w: data chunks %q: %v", ErrInvalidEncoding, parts[0], err)
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return Encoding{}, fmt.Errorf("%w: code chunks %q: %v", ErrInvalidEncoding, parts[1], err)
	}
	return NewEncoding(data, code)
}

// Total returns the number of columns.
func (e Encoding) Total() int {
	return e.DataChunks + e.CodeChunks
}

// Validate checks the chunk counts.
func (e Encoding) Validate() error {
	if e.DataChunks < 1 {
		return fmt.Errorf("%w: data chunks must be at least 1, got %d", ErrInvalidEncoding, e.DataChunks)
	}
	if e.CodeChunks < 0 {
		return fmt.Errorf("%w: code chunks cannot be negative, got %d", ErrInvalidEncoding, e.CodeChunks)
	}
	if e.Total() > MaxChunks {
		return fmt.Errorf("%w: total chunks (%d) cannot exceed %d", ErrInvalidEncoding, e.Total(), MaxChunks)
	}
	return nil
}

// RowCount returns how many byte rows are needed to hold length bytes.
func (e Encoding) RowCount(length int) int {
	if e.DataChunks < 1 || length <= 0 {
		return 0
	}
	return (length + e.DataChunks - 1) / e.DataChunks
}

// String returns the "rs=N.M" form.
func (e Encoding) String() string {
	return fmt.Sprintf("rs=%d.%d", e.DataChunks, e.CodeChunks)
}
