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
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-rsphrase/pkg/words"
)

// Share is one column of the codeword. Index 0 is the secret column.
type Share struct {
	// Index is the column number
	Index int `json:"index" yaml:"index"`

	// Payload holds one byte per secret word
	Payload []byte `json:"payload" yaml:"payload"`
}

// Phrase renders the share as "<index word> <payload words...>".
func (s *Share) Phrase(c words.Codec) string {
	var sb strings.Builder
	sb.WriteString(c.Word(byte(s.Index)))
	for _, b := range s.Payload {
		sb.WriteByte(' ')
		sb.WriteString(c.Word(b))
	}
	return sb.String()
}

// String returns a short description for debugging
func (s *Share) String() string {
	return fmt.Sprintf("Share{Index: %d, Words: %d}", s.Index, len(s.Payload))
}

// ParseShare reads a phrase produced by Share.Phrase.
func ParseShare(c words.Codec, phrase string) (*Share, error) {
	fields := strings.Fields(phrase)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: need an index word and at least one payload word, got %d words",
			ErrMalformedShare, len(fields))
	}
	idx, err := c.Byte(fields[0])
	if err != nil {
		return nil, fmt.Errorf("share index: %w", err)
	}
	payload, err := words.Decode(c, fields[1:])
	if err != nil {
		return nil, fmt.Errorf("share %d payload: %w", idx, err)
	}
	return &Share{Index: int(idx), Payload: payload}, nil
}
