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
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-rsphrase/pkg/metrics"
	"github.com/jeremyhahn/go-rsphrase/pkg/shares"
	"github.com/jeremyhahn/go-rsphrase/pkg/words"
)

func newRestoreCmd(a *app) *cobra.Command {
	var (
		phrases  []string
		sharesIn string
	)

	restoreCmd := &cobra.Command{
		Use:   "restore",
		Short: "Rebuild a secret from word-phrase shares",
		Long: `Restore rebuilds a secret from at least --required share phrases. Shares
are given with repeated --share flags or one per line in --shares-file
(or standard input). Order does not matter and blank lines are skipped.`,
		Example: `  rsphrase restore --total 6 --required 3 \
    --share "acorn ..." --share "alarm ..." --share "amber ..."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := phrases
			if len(list) == 0 {
				raw, err := readInput(cmd, "", sharesIn)
				if err != nil {
					return err
				}
				list = readLines(raw)
			}

			sc := a.cfg.Shares
			scheme, err := shares.New(&shares.Config{
				Total:    sc.Total,
				Required: sc.Required,
				Words:    a.codec,
				Logger:   a.logger,
			})
			if err != nil {
				return err
			}
			a.printVerbose("Restoring from %d phrases, %d required", len(list), sc.Required)

			var secret []byte
			var parsed []*shares.Share
			err = metrics.Observe(metrics.OpRestore, scheme.Encoding().String(), func() error {
				var err error
				if parsed, err = scheme.ParsePhrases(list); err != nil {
					return err
				}
				secret, err = scheme.Restore(parsed)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to restore secret: %w", err)
			}
			metrics.RecordErasures(metrics.OpRestore, max(sc.Total-scheme.DistinctColumns(parsed), 0))
			metrics.RecordBytes(metrics.OpRestore, len(secret))

			return a.printer().PrintSecret(&SecretResult{
				Words:  len(secret),
				Secret: words.Phrase(a.codec, secret),
			})
		},
	}

	restoreCmd.Flags().Int("total", 6, "number of columns the shares were generated with")
	restoreCmd.Flags().Int("required", 3, "number of shares needed to restore the secret")
	restoreCmd.Flags().StringArrayVar(&phrases, "share", nil, "share phrase (repeatable)")
	restoreCmd.Flags().StringVarP(&sharesIn, "shares-file", "f", "", "file with one share phrase per line, - for standard input")
	return restoreCmd
}

// readLines splits raw into trimmed non-empty lines.
func readLines(raw []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
