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

// Package erasure implements a systematic Reed-Solomon erasure code over
// GF(256).
//
// Data is laid out row-major in rows of DataChunks bytes. Every row is
// multiplied by a Total x DataChunks generator matrix whose top block is
// the identity, so columns 0..DataChunks-1 carry the data verbatim and the
// remaining CodeChunks columns carry parity. Any DataChunks valid columns
// are enough to rebuild the data.
//
// Column i corresponds to the evaluation point i. Parity column j is the
// value at point j of the unique polynomial of degree below DataChunks that
// passes through (0, d0), (1, d1), ... for the row's data bytes.
package erasure

import (
	"fmt"
	"sync"

	"github.com/jeremyhahn/go-rsphrase/pkg/matrix"
)

// generators caches generator matrices by encoding. Cached matrices are
// never modified.
var generators sync.Map

// Generator returns the Total x DataChunks systematic generator matrix for
// enc. The returned matrix is shared and must not be modified.
func Generator(enc Encoding) (*matrix.Matrix, error) {
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	if g, ok := generators.Load(enc); ok {
		return g.(*matrix.Matrix), nil
	}
	g, err := buildGenerator(enc)
	if err != nil {
		return nil, err
	}
	actual, _ := generators.LoadOrStore(enc, g)
	return actual.(*matrix.Matrix), nil
}

// buildGenerator computes V * inverse(V_top) where V is the Vandermonde
// matrix over the points 0..Total-1 and V_top its first DataChunks rows.
func buildGenerator(enc Encoding) (*matrix.Matrix, error) {
	points := make([]byte, enc.Total())
	for i := range points {
		points[i] = byte(i)
	}
	v, err := matrix.Vandermonde(points, enc.DataChunks)
	if err != nil {
		return nil, err
	}
	top := make([]int, enc.DataChunks)
	for i := range top {
		top[i] = i
	}
	vTop, err := v.SubMatrix(top)
	if err != nil {
		return nil, err
	}
	vTopInv, err := vTop.Invert()
	if err != nil {
		return nil, fmt.Errorf("%w: generator for %s: %v", ErrInternal, enc, err)
	}
	return v.Multiply(vTopInv)
}
