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
	"errors"

	"github.com/jeremyhahn/go-rsphrase/pkg/erasure"
	"github.com/jeremyhahn/go-rsphrase/pkg/words"
)

var (
	// ErrInvalidConfig is returned for share parameters that cannot work
	ErrInvalidConfig = errors.New("shares: invalid configuration")

	// ErrMalformedShare is returned for a share that is empty, names a
	// column outside the scheme or has the wrong number of words
	ErrMalformedShare = errors.New("shares: malformed share")

	// ErrInsufficientShares is returned when fewer than Required distinct
	// shares could be read
	ErrInsufficientShares = erasure.ErrInsufficientShares

	// ErrUnknownWord is returned when a phrase holds a word outside the
	// vocabulary
	ErrUnknownWord = words.ErrUnknownWord
)
