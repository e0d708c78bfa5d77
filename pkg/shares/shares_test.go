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

package shares

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-rsphrase/pkg/erasure"
	"github.com/jeremyhahn/go-rsphrase/pkg/words"
)

// seeded returns a deterministic source of "random" bytes for tests.
func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "3 of 6", config: &Config{Total: 6, Required: 3, WordCount: 12}},
		{name: "restore only", config: &Config{Total: 6, Required: 3}},
		{name: "threshold of 1", config: &Config{Total: 2, Required: 1, WordCount: 4}},
		{name: "largest", config: &Config{Total: 256, Required: 255, WordCount: 1}},
		{name: "nil config", config: nil, wantErr: true},
		{name: "zero required", config: &Config{Total: 6, Required: 0, WordCount: 12}, wantErr: true},
		{name: "total equals required", config: &Config{Total: 3, Required: 3, WordCount: 12}, wantErr: true},
		{name: "total below required", config: &Config{Total: 2, Required: 3, WordCount: 12}, wantErr: true},
		{name: "too many columns", config: &Config{Total: 257, Required: 3, WordCount: 12}, wantErr: true},
		{name: "negative word count", config: &Config{Total: 6, Required: 3, WordCount: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.config)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, erasure.Encoding{
				DataChunks: tt.config.Required,
				CodeChunks: tt.config.Total - tt.config.Required,
			}, s.Encoding())
		})
	}
}

func TestGenerate(t *testing.T) {
	s, err := New(&Config{Total: 6, Required: 3, WordCount: 12, Random: seeded(1)})
	require.NoError(t, err)

	set, err := s.Generate(nil)
	require.NoError(t, err)

	assert.NotEmpty(t, set.ID)
	assert.Equal(t, 6, set.Total)
	assert.Equal(t, 3, set.Required)
	assert.Len(t, set.Secret, 12)
	assert.Len(t, strings.Fields(set.SecretPhrase), 12)
	require.Len(t, set.Shares, 5)
	require.Len(t, set.Phrases, 5)

	for i, sh := range set.Shares {
		assert.Equal(t, i+1, sh.Index)
		assert.Len(t, sh.Payload, 12)

		fields := strings.Fields(set.Phrases[i])
		require.Len(t, fields, 13)
		assert.Equal(t, words.Default().Word(byte(i+1)), fields[0])
		assert.Equal(t, sh.Phrase(words.Default()), set.Phrases[i])
	}
}

func TestGenerateWithSecret(t *testing.T) {
	s, err := New(&Config{Total: 5, Required: 2, WordCount: 4, Random: seeded(2)})
	require.NoError(t, err)

	set, err := s.Generate([]byte{10, 20, 30, 40})
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 40}, set.Secret)

	long, err := s.Generate([]byte{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, long.Secret, "secret is truncated to the word count")

	short, err := s.Generate([]byte{9})
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 0, 0, 0}, short.Secret, "secret is zero padded to the word count")

	got, err := s.Restore(short.Shares[1:3])
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 0, 0, 0}, got)
}

func TestGenerateNeedsWordCount(t *testing.T) {
	s, err := New(&Config{Total: 6, Required: 3})
	require.NoError(t, err)
	_, err = s.Generate(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateRandomFailure(t *testing.T) {
	s, err := New(&Config{Total: 6, Required: 3, WordCount: 12, Random: bytes.NewReader(make([]byte, 5))})
	require.NoError(t, err)
	_, err = s.Generate(nil)
	assert.Error(t, err)
}

func TestGenerateFillerIsRandom(t *testing.T) {
	// Same secret, different filler: the shares must differ.
	s, err := New(&Config{Total: 4, Required: 2, WordCount: 8, Random: seeded(3)})
	require.NoError(t, err)
	secret := []byte("constant")

	a, err := s.Generate(secret)
	require.NoError(t, err)
	b, err := s.Generate(secret)
	require.NoError(t, err)
	assert.Equal(t, a.Secret, b.Secret)
	assert.NotEqual(t, a.Phrases, b.Phrases)
	assert.NotEqual(t, a.ID, b.ID)
}

// columnsFor returns share-like views of every column including the secret.
func columnsFor(set *ShareSet) []*Share {
	all := []*Share{{Index: SecretColumn, Payload: set.Secret}}
	return append(all, set.Shares...)
}

func TestRestoreAnyThreeOfSix(t *testing.T) {
	s, err := New(&Config{Total: 6, Required: 3, WordCount: 16, Random: seeded(4)})
	require.NoError(t, err)
	set, err := s.Generate(nil)
	require.NoError(t, err)
	cols := columnsFor(set)

	for a := 0; a < 6; a++ {
		for b := 0; b < 6; b++ {
			for c := 0; c < 6; c++ {
				if a == b || b == c || a == c {
					continue
				}
				got, err := s.Restore([]*Share{cols[a], cols[b], cols[c]})
				require.NoError(t, err, "columns %d %d %d", a, b, c)
				require.Equal(t, set.Secret, got, "columns %d %d %d", a, b, c)
			}
		}
	}
}

func TestRestorePhrasesAnyOrder(t *testing.T) {
	s, err := New(&Config{Total: 6, Required: 3, WordCount: 10, Random: seeded(5)})
	require.NoError(t, err)
	set, err := s.Generate(nil)
	require.NoError(t, err)

	p := set.Phrases
	for _, pick := range [][]string{
		{p[0], p[1], p[2]},
		{p[4], p[2], p[0]},
		{p[3], "", p[1], "", p[4]},
		{p[0], p[1], p[2], p[3], p[4]},
	} {
		got, err := s.RestorePhrases(pick)
		require.NoError(t, err)
		assert.Equal(t, set.Secret, got)
	}
}

func TestRestoreInsufficient(t *testing.T) {
	s, err := New(&Config{Total: 6, Required: 3, WordCount: 10, Random: seeded(6)})
	require.NoError(t, err)
	set, err := s.Generate(nil)
	require.NoError(t, err)

	_, err = s.RestorePhrases(set.Phrases[:2])
	assert.ErrorIs(t, err, ErrInsufficientShares)

	// A repeated share does not count twice.
	_, err = s.RestorePhrases([]string{set.Phrases[0], set.Phrases[0], set.Phrases[1]})
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = s.Restore(nil)
	assert.ErrorIs(t, err, ErrInsufficientShares)
}

func TestRestoreUnknownWord(t *testing.T) {
	s, err := New(&Config{Total: 6, Required: 3, WordCount: 4, Random: seeded(7)})
	require.NoError(t, err)
	set, err := s.Generate(nil)
	require.NoError(t, err)

	fields := strings.Fields(set.Phrases[1])
	fields[2] = "notaword"
	_, err = s.RestorePhrases([]string{set.Phrases[0], strings.Join(fields, " "), set.Phrases[2]})
	assert.ErrorIs(t, err, ErrUnknownWord)
	assert.ErrorIs(t, err, words.ErrUnknownWord)
}

func TestRestoreMalformed(t *testing.T) {
	wl := words.Default()
	s, err := New(&Config{Total: 6, Required: 3, Random: seeded(8)})
	require.NoError(t, err)

	tests := []struct {
		name   string
		shares []*Share
	}{
		{"index past total", []*Share{{Index: 6, Payload: []byte{1}}}},
		{"negative index", []*Share{{Index: -1, Payload: []byte{1}}}},
		{"length mismatch", []*Share{{Index: 1, Payload: []byte{1, 2}}, {Index: 2, Payload: []byte{1}}}},
		{"empty payload before valid shares", []*Share{
			{Index: 5, Payload: nil},
			{Index: 1, Payload: []byte{1, 2}},
			{Index: 2, Payload: []byte{3, 4}},
			{Index: 3, Payload: []byte{5, 6}},
		}},
		{"empty payload after valid shares", []*Share{
			{Index: 1, Payload: []byte{1, 2}},
			{Index: 2, Payload: []byte{3, 4}},
			{Index: 3, Payload: []byte{5, 6}},
			{Index: 4, Payload: []byte{}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Restore(tt.shares)
			assert.ErrorIs(t, err, ErrMalformedShare)
		})
	}

	_, err = s.RestorePhrases([]string{wl.Word(1)})
	assert.ErrorIs(t, err, ErrMalformedShare)
}

func TestParseShare(t *testing.T) {
	wl := words.Default()
	sh := &Share{Index: 3, Payload: []byte{0, 255, 7}}

	got, err := ParseShare(wl, "  "+strings.ToUpper(sh.Phrase(wl))+"  ")
	require.NoError(t, err)
	assert.Equal(t, sh, got)

	_, err = ParseShare(wl, "")
	assert.ErrorIs(t, err, ErrMalformedShare)

	_, err = ParseShare(wl, "notaword acid")
	assert.ErrorIs(t, err, ErrUnknownWord)

	assert.Equal(t, "Share{Index: 3, Words: 3}", sh.String())
}

func TestGenerateSharesAndRestoreSecret(t *testing.T) {
	set, err := GenerateShares(6, 3, 24)
	require.NoError(t, err)

	phrase, err := RestoreSecret(3, 6, []string{set.Phrases[4], set.Phrases[1], set.Phrases[3]})
	require.NoError(t, err)
	assert.Equal(t, set.SecretPhrase, phrase)

	_, err = RestoreSecret(3, 6, set.Phrases[:2])
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = GenerateShares(3, 3, 24)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestThresholdOfOne(t *testing.T) {
	s, err := New(&Config{Total: 4, Required: 1, WordCount: 5, Random: seeded(9)})
	require.NoError(t, err)
	set, err := s.Generate(nil)
	require.NoError(t, err)

	for _, sh := range set.Shares {
		assert.Equal(t, set.Secret, sh.Payload, "with one required share every share is the secret")
		got, err := s.Restore([]*Share{sh})
		require.NoError(t, err)
		assert.Equal(t, set.Secret, got)
	}
}

func TestParsePhrasesAndDistinctColumns(t *testing.T) {
	s, err := New(&Config{Total: 6, Required: 3, WordCount: 4, Random: seeded(10)})
	require.NoError(t, err)
	set, err := s.Generate(nil)
	require.NoError(t, err)

	p := set.Phrases
	list, err := s.ParsePhrases([]string{p[0], "", p[0], p[3], p[1]})
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, 3, s.DistinctColumns(list))

	list = append(list, &Share{Index: 9, Payload: []byte{1, 2, 3, 4}}, nil)
	assert.Equal(t, 3, s.DistinctColumns(list), "out of range and nil shares are not counted")

	_, err = s.ParsePhrases([]string{p[0], "acid notaword"})
	assert.ErrorIs(t, err, ErrUnknownWord)
}
