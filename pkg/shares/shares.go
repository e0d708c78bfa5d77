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
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/jeremyhahn/go-rsphrase/pkg/erasure"
	"github.com/jeremyhahn/go-rsphrase/pkg/logging"
	"github.com/jeremyhahn/go-rsphrase/pkg/words"
)

// SecretColumn is the codeword column that holds the secret.
const SecretColumn = 0

// Config configures a sharing scheme.
type Config struct {
	// Total is the number of codeword columns, the secret column included.
	// Total-1 shares are handed out.
	Total int

	// Required is how many distinct columns rebuild the secret
	Required int

	// WordCount is the secret length in words. Generate needs it; Restore
	// takes the length from the shares when it is zero.
	WordCount int

	// Words is the vocabulary. Defaults to words.Default().
	Words words.Codec

	// Random supplies filler bytes and random secrets. Defaults to
	// crypto/rand.Reader.
	Random io.Reader

	// Logger defaults to a discarding logger
	Logger *logging.Logger
}

// Scheme generates and restores shares for one configuration.
type Scheme struct {
	total     int
	required  int
	wordCount int
	encoding  erasure.Encoding
	words     words.Codec
	random    io.Reader
	logger    *logging.Logger
}

// ShareSet is the result of one generation.
type ShareSet struct {
	// ID correlates the shares of one generation. It is not part of any
	// phrase.
	ID string `json:"id" yaml:"id"`

	Total    int `json:"total" yaml:"total"`
	Required int `json:"required" yaml:"required"`

	// Secret is the column 0 payload
	Secret       []byte `json:"-" yaml:"-"`
	SecretPhrase string `json:"secret" yaml:"secret"`

	// Shares are columns 1..Total-1
	Shares  []*Share `json:"-" yaml:"-"`
	Phrases []string `json:"shares" yaml:"shares"`
}

// New validates cfg and returns a Scheme.
func New(cfg *Config) (*Scheme, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
	}
	if cfg.Required < 1 {
		return nil, fmt.Errorf("%w: required must be at least 1, got %d", ErrInvalidConfig, cfg.Required)
	}
	if cfg.Total <= cfg.Required {
		return nil, fmt.Errorf("%w: total (%d) must exceed required (%d), column 0 is the secret and not a share",
			ErrInvalidConfig, cfg.Total, cfg.Required)
	}
	if cfg.WordCount < 0 {
		return nil, fmt.Errorf("%w: word count cannot be negative, got %d", ErrInvalidConfig, cfg.WordCount)
	}
	enc, err := erasure.NewEncoding(cfg.Required, cfg.Total-cfg.Required)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s := &Scheme{
		total:     cfg.Total,
		required:  cfg.Required,
		wordCount: cfg.WordCount,
		encoding:  enc,
		words:     cfg.Words,
		random:    cfg.Random,
		logger:    cfg.Logger,
	}
	if s.words == nil {
		s.words = words.Default()
	}
	if s.random == nil {
		s.random = rand.Reader
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s, nil
}

// Encoding returns the erasure code used for the shares.
func (s *Scheme) Encoding() erasure.Encoding {
	return s.encoding
}

// Words returns the vocabulary.
func (s *Scheme) Words() words.Codec {
	return s.words
}

// Generate splits secret into shares. A nil secret is replaced by WordCount
// random bytes; otherwise the secret is truncated or zero padded to
// WordCount bytes.
func (s *Scheme) Generate(secret []byte) (*ShareSet, error) {
	if s.wordCount < 1 {
		return nil, fmt.Errorf("%w: word count must be at least 1 to generate", ErrInvalidConfig)
	}
	k := s.required

	sec := make([]byte, s.wordCount)
	if secret == nil {
		if _, err := io.ReadFull(s.random, sec); err != nil {
			return nil, fmt.Errorf("shares: generate secret: %w", err)
		}
	} else {
		copy(sec, secret)
	}

	filler := make([]byte, s.wordCount*(k-1))
	if _, err := io.ReadFull(s.random, filler); err != nil {
		return nil, fmt.Errorf("shares: generate filler: %w", err)
	}

	data := make([]byte, s.wordCount*k)
	for r := 0; r < s.wordCount; r++ {
		data[r*k] = sec[r]
		copy(data[r*k+1:(r+1)*k], filler[r*(k-1):(r+1)*(k-1)])
	}

	stream, err := erasure.Encode(data, s.encoding)
	if err != nil {
		return nil, fmt.Errorf("shares: encode: %w", err)
	}
	s.logger.Debug("generated shares",
		"encoding", s.encoding.String(),
		"words", s.wordCount,
		"shares", s.total-1)

	set := &ShareSet{
		ID:       uuid.NewString(),
		Total:    s.total,
		Required: s.required,
		Secret:   append([]byte(nil), stream.Columns[SecretColumn]...),
		Shares:   make([]*Share, 0, s.total-1),
		Phrases:  make([]string, 0, s.total-1),
	}
	set.SecretPhrase = words.Phrase(s.words, set.Secret)
	for i := SecretColumn + 1; i < s.total; i++ {
		sh := &Share{Index: i, Payload: stream.Columns[i]}
		set.Shares = append(set.Shares, sh)
		set.Phrases = append(set.Phrases, sh.Phrase(s.words))
	}
	return set, nil
}

// Restore rebuilds the secret from shares. The secret column itself is
// accepted as a share. When an index appears more than once the first
// occurrence is used.
func (s *Scheme) Restore(shares []*Share) ([]byte, error) {
	for _, sh := range shares {
		if sh != nil && len(sh.Payload) == 0 {
			return nil, fmt.Errorf("%w: share %d has no payload words", ErrMalformedShare, sh.Index)
		}
	}
	wordCount := s.wordCount
	if wordCount == 0 {
		for _, sh := range shares {
			if sh != nil {
				wordCount = len(sh.Payload)
				break
			}
		}
	}
	if wordCount == 0 {
		return nil, fmt.Errorf("%w: need %d shares, have 0", ErrInsufficientShares, s.required)
	}

	stream, err := erasure.NewStream(s.encoding, wordCount*s.required)
	if err != nil {
		return nil, err
	}
	for _, sh := range shares {
		if sh == nil {
			continue
		}
		if sh.Index < 0 || sh.Index >= s.total {
			return nil, fmt.Errorf("%w: index %d outside [0, %d)", ErrMalformedShare, sh.Index, s.total)
		}
		if len(sh.Payload) != wordCount {
			return nil, fmt.Errorf("%w: share %d has %d words, want %d",
				ErrMalformedShare, sh.Index, len(sh.Payload), wordCount)
		}
		if stream.Valid[sh.Index] {
			s.logger.Debug("ignoring duplicate share", "index", sh.Index)
			continue
		}
		if err := stream.SetColumn(sh.Index, sh.Payload); err != nil {
			return nil, err
		}
	}
	s.logger.Debug("restoring secret",
		"encoding", s.encoding.String(),
		"valid", fmt.Sprint(stream.ValidIndices()))

	data, err := erasure.Decode(stream)
	if err != nil {
		return nil, fmt.Errorf("shares: restore: %w", err)
	}
	secret := make([]byte, wordCount)
	for r := range secret {
		secret[r] = data[r*s.required]
	}
	return secret, nil
}

// ParsePhrases parses share phrases with the scheme's vocabulary. Empty
// phrases count as absent shares and are skipped.
func (s *Scheme) ParsePhrases(phrases []string) ([]*Share, error) {
	list := make([]*Share, 0, len(phrases))
	for i, p := range phrases {
		if len(p) == 0 {
			continue
		}
		sh, err := ParseShare(s.words, p)
		if err != nil {
			return nil, fmt.Errorf("phrase %d: %w", i+1, err)
		}
		list = append(list, sh)
	}
	return list, nil
}

// RestorePhrases parses phrases and restores the secret. Empty phrases
// count as absent shares.
func (s *Scheme) RestorePhrases(phrases []string) ([]byte, error) {
	list, err := s.ParsePhrases(phrases)
	if err != nil {
		return nil, err
	}
	return s.Restore(list)
}

// DistinctColumns returns how many different in-range columns shares name.
// Repeated columns count once.
func (s *Scheme) DistinctColumns(shares []*Share) int {
	seen := make(map[int]bool, len(shares))
	for _, sh := range shares {
		if sh != nil && sh.Index >= 0 && sh.Index < s.total {
			seen[sh.Index] = true
		}
	}
	return len(seen)
}

// GenerateShares creates a random secret of wordCount words and returns it
// with its share phrases, using the built-in vocabulary.
func GenerateShares(total, required, wordCount int) (*ShareSet, error) {
	scheme, err := New(&Config{Total: total, Required: required, WordCount: wordCount})
	if err != nil {
		return nil, err
	}
	return scheme.Generate(nil)
}

// RestoreSecret rebuilds the secret phrase from share phrases produced by
// GenerateShares with the same total and required.
func RestoreSecret(required, total int, phrases []string) (string, error) {
	scheme, err := New(&Config{Total: total, Required: required})
	if err != nil {
		return "", err
	}
	secret, err := scheme.RestorePhrases(phrases)
	if err != nil {
		return "", err
	}
	return words.Phrase(scheme.words, secret), nil
}
