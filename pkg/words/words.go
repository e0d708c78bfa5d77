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

// Package words converts bytes to and from words of a fixed 256-word
// vocabulary so that binary values can be written down and read aloud.
package words

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Size is the number of words in a vocabulary, one per byte value.
const Size = 256

var (
	// ErrUnknownWord is returned when a word is not in the vocabulary
	ErrUnknownWord = errors.New("words: unknown word")

	// ErrInvalidWordList is returned when a vocabulary does not hold exactly
	// Size distinct words
	ErrInvalidWordList = errors.New("words: invalid word list")
)

// Codec maps bytes to words and back.
type Codec interface {
	// Word returns the word for b.
	Word(b byte) string

	// Byte returns the byte for w or an error wrapping ErrUnknownWord.
	Byte(w string) (byte, error)
}

//go:embed wordlist256.txt
var defaultList string

var (
	defaultOnce sync.Once
	defaultWL   *WordList
)

// WordList is a Codec backed by an in-memory vocabulary. It is immutable
// and safe for concurrent use.
type WordList struct {
	words []string
	index map[string]byte
}

// Default returns the built-in vocabulary.
func Default() *WordList {
	defaultOnce.Do(func() {
		wl, err := Parse(strings.NewReader(defaultList))
		if err != nil {
			panic(fmt.Sprintf("words: built-in word list: %v", err))
		}
		defaultWL = wl
	})
	return defaultWL
}

// New builds a WordList from exactly Size distinct words. Words are
// lowercased and trimmed.
func New(list []string) (*WordList, error) {
	if len(list) != Size {
		return nil, fmt.Errorf("%w: have %d words, need %d", ErrInvalidWordList, len(list), Size)
	}
	wl := &WordList{
		words: make([]string, Size),
		index: make(map[string]byte, Size),
	}
	for i, w := range list {
		w = normalize(w)
		if w == "" || strings.ContainsAny(w, " \t") {
			return nil, fmt.Errorf("%w: entry %d is not a single word", ErrInvalidWordList, i)
		}
		if prev, ok := wl.index[w]; ok {
			return nil, fmt.Errorf("%w: %q appears at %d and %d", ErrInvalidWordList, w, prev, i)
		}
		wl.words[i] = w
		wl.index[w] = byte(i)
	}
	return wl, nil
}

// Parse reads one word per line. Blank lines are skipped.
func Parse(r io.Reader) (*WordList, error) {
	var list []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			list = append(list, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("words: read word list: %w", err)
	}
	return New(list)
}

// Load reads a word list file.
func Load(path string) (*WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open word list: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Word implements Codec.
func (wl *WordList) Word(b byte) string {
	return wl.words[b]
}

// Byte implements Codec. Matching ignores case and surrounding whitespace.
func (wl *WordList) Byte(w string) (byte, error) {
	b, ok := wl.index[normalize(w)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, w)
	}
	return b, nil
}

// Words returns a copy of the vocabulary in byte order.
func (wl *WordList) Words() []string {
	return append([]string(nil), wl.words...)
}

// Encode returns one word per byte.
func Encode(c Codec, data []byte) []string {
	out := make([]string, len(data))
	for i, b := range data {
		out[i] = c.Word(b)
	}
	return out
}

// Decode returns one byte per word, failing on the first unknown word.
func Decode(c Codec, list []string) ([]byte, error) {
	out := make([]byte, len(list))
	for i, w := range list {
		b, err := c.Byte(w)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i+1, err)
		}
		out[i] = b
	}
	return out, nil
}

// Phrase renders data as space-separated words.
func Phrase(c Codec, data []byte) string {
	return strings.Join(Encode(c, data), " ")
}

// ParsePhrase splits a phrase on whitespace and decodes every word.
func ParsePhrase(c Codec, phrase string) ([]byte, error) {
	return Decode(c, strings.Fields(phrase))
}

func normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}
