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

import "errors"

var (
	// ErrInvalidEncoding is returned for data/code chunk counts that cannot
	// form a code
	ErrInvalidEncoding = errors.New("erasure: invalid encoding")

	// ErrMalformedStream is returned when a stream's columns or validity
	// flags do not match its encoding and length
	ErrMalformedStream = errors.New("erasure: malformed stream")

	// ErrInsufficientShares is returned when fewer than DataChunks columns
	// are marked valid
	ErrInsufficientShares = errors.New("erasure: insufficient shares")

	// ErrInternal signals a broken generator matrix. It is not reachable
	// with a correctly constructed code.
	ErrInternal = errors.New("erasure: internal invariant violated")
)
