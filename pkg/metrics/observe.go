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

package metrics

import (
	"errors"
	"time"

	"github.com/jeremyhahn/go-rsphrase/pkg/erasure"
	"github.com/jeremyhahn/go-rsphrase/pkg/shares"
	"github.com/jeremyhahn/go-rsphrase/pkg/words"
)

// Error type label values
const (
	ErrTypeInvalidEncoding    = "invalid_encoding"
	ErrTypeMalformedStream    = "malformed_stream"
	ErrTypeInsufficientShares = "insufficient_shares"
	ErrTypeInternal           = "internal"
	ErrTypeUnknownWord        = "unknown_word"
	ErrTypeInvalidWordList    = "invalid_word_list"
	ErrTypeInvalidConfig      = "invalid_config"
	ErrTypeMalformedShare     = "malformed_share"
	ErrTypeOther              = "other"
)

// ErrorType maps err to a low-cardinality label value. The first matching
// sentinel wins; anything unrecognized is ErrTypeOther.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, erasure.ErrInsufficientShares):
		return ErrTypeInsufficientShares
	case errors.Is(err, words.ErrUnknownWord):
		return ErrTypeUnknownWord
	case errors.Is(err, words.ErrInvalidWordList):
		return ErrTypeInvalidWordList
	case errors.Is(err, shares.ErrMalformedShare):
		return ErrTypeMalformedShare
	case errors.Is(err, shares.ErrInvalidConfig):
		return ErrTypeInvalidConfig
	case errors.Is(err, erasure.ErrInvalidEncoding):
		return ErrTypeInvalidEncoding
	case errors.Is(err, erasure.ErrMalformedStream):
		return ErrTypeMalformedStream
	case errors.Is(err, erasure.ErrInternal):
		return ErrTypeInternal
	}
	return ErrTypeOther
}

// Observe runs fn and records it as one operation: the counter and latency
// histogram always, the error counter when fn fails. fn's error is returned
// unchanged.
//
// Example:
//
//	err := metrics.Observe(metrics.OpDecode, stream.Encoding.String(), func() error {
//	    data, err = erasure.Decode(stream)
//	    return err
//	})
func Observe(operation, encoding string, fn func() error) error {
	start := time.Now()
	err := fn()
	duration := time.Since(start).Seconds()

	if err != nil {
		RecordOperation(operation, encoding, StatusError, duration)
		RecordError(operation, ErrorType(err))
		return err
	}
	RecordOperation(operation, encoding, StatusSuccess, duration)
	return nil
}
