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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-rsphrase/pkg/metrics"
	"github.com/jeremyhahn/go-rsphrase/pkg/shares"
	"github.com/jeremyhahn/go-rsphrase/pkg/words"
)

func newGenerateCmd(a *app) *cobra.Command {
	var secret string

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Split a secret into word-phrase shares",
		Long: `Generate creates a secret of --words random words, or takes the one given
with --secret, and splits it into total-1 share phrases. Any --required of
them restore the secret; fewer reveal nothing about it.

Each share phrase starts with a word naming its column followed by one
word per secret word.`,
		Example: `  rsphrase generate --total 6 --required 3 --words 12
  rsphrase generate --total 4 --required 2 --secret "acid acorn zebra"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Shares
			var given []byte
			if cmd.Flags().Changed("secret") {
				b, err := words.ParsePhrase(a.codec, secret)
				if err != nil {
					return fmt.Errorf("invalid secret: %w", err)
				}
				if len(b) == 0 {
					return fmt.Errorf("%w: secret phrase is empty", shares.ErrInvalidConfig)
				}
				given = b
				sc.Words = len(b)
			}

			scheme, err := shares.New(&shares.Config{
				Total:     sc.Total,
				Required:  sc.Required,
				WordCount: sc.Words,
				Words:     a.codec,
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}
			a.printVerbose("Splitting a %d-word secret into %d shares, %d required",
				sc.Words, sc.Total-1, sc.Required)

			var set *shares.ShareSet
			err = metrics.Observe(metrics.OpGenerate, scheme.Encoding().String(), func() error {
				var err error
				set, err = scheme.Generate(given)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to generate shares: %w", err)
			}
			metrics.RecordBytes(metrics.OpGenerate, len(set.Secret))

			return a.printer().PrintShareSet(set)
		},
	}

	generateCmd.Flags().Int("total", 6, "number of columns including the secret; total-1 shares are produced")
	generateCmd.Flags().Int("required", 3, "number of shares needed to restore the secret")
	generateCmd.Flags().Int("words", 12, "secret length in words when no --secret is given")
	generateCmd.Flags().StringVar(&secret, "secret", "", "secret phrase to split instead of a random one")
	return generateCmd
}
