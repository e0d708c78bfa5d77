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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Encoding
		wantErr bool
	}{
		{name: "data and code chunks", input: "rs=9.4", want: Encoding{DataChunks: 9, CodeChunks: 4}},
		{name: "no code chunks", input: "rs=5.0", want: Encoding{DataChunks: 5, CodeChunks: 0}},
		{name: "surrounding whitespace", input: "  rs=6.4\n", want: Encoding{DataChunks: 6, CodeChunks: 4}},
		{name: "largest code", input: "rs=128.128", want: Encoding{DataChunks: 128, CodeChunks: 128}},
		{name: "missing prefix", input: "9.4", wantErr: true},
		{name: "too many columns", input: "rs=200.57", wantErr: true},
		{name: "zero data chunks", input: "rs=0.4", wantErr: true},
		{name: "negative code chunks", input: "rs=3.-1", wantErr: true},
		{name: "missing code chunks", input: "rs=3", wantErr: true},
		{name: "extra part", input: "rs=3.2.1", wantErr: true},
		{name: "not a number", input: "rs=a.b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEncoding(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEncoding)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Encoding {
	t.Helper()
	enc, err := ParseEncoding(s)
	require.NoError(t, err)
	return enc
}

func TestEncodingRowCount(t *testing.T) {
	enc := Encoding{DataChunks: 6, CodeChunks: 4}
	assert.Equal(t, 0, enc.RowCount(0))
	assert.Equal(t, 1, enc.RowCount(1))
	assert.Equal(t, 1, enc.RowCount(6))
	assert.Equal(t, 2, enc.RowCount(7))
	assert.Equal(t, 2, enc.RowCount(11))
	assert.Equal(t, 10, enc.Total())
}

func TestStreamHelpers(t *testing.T) {
	enc := Encoding{DataChunks: 2, CodeChunks: 2}
	s, err := NewStream(enc, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, s.RowCount())
	assert.Equal(t, 0, s.ValidCount())

	require.NoError(t, s.SetColumn(1, []byte{1, 2}))
	require.NoError(t, s.SetColumn(3, []byte{3, 4}))
	assert.Equal(t, []int{1, 3}, s.ValidIndices())

	assert.ErrorIs(t, s.SetColumn(4, []byte{1, 2}), ErrMalformedStream)
	assert.ErrorIs(t, s.SetColumn(0, []byte{1}), ErrMalformedStream)

	clone := s.Clone()
	s.Erase(1, 99, -1)
	assert.Equal(t, 1, s.ValidCount())
	assert.Equal(t, 2, clone.ValidCount(), "clone must not share validity flags")

	_, err = NewStream(enc, -1)
	assert.ErrorIs(t, err, ErrMalformedStream)
	_, err = NewStream(Encoding{}, 1)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}
