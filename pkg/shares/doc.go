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

// Package shares splits a secret into word-phrase shares on top of the
// erasure package, so that any Required of them bring the secret back.
//
// Every word position of the secret is one row of a Reed-Solomon code with
// Required data chunks. The first byte of each row is the secret byte, the
// remaining Required-1 bytes are random. Column 0 of the codeword is
// therefore the secret itself and is never handed out; columns 1..Total-1
// become the shares. Because the code is MDS and the filler bytes are
// uniformly random, any Required-1 shares are independent of the secret.
//
// A share is written as a phrase: the first word names the column, the
// remaining words are the column's bytes.
//
//	set, err := shares.GenerateShares(6, 3, 12)
//	...
//	secret, err := shares.RestoreSecret(3, 6, []string{p1, p4, p5})
package shares
