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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-rsphrase/pkg/erasure"
	"github.com/jeremyhahn/go-rsphrase/pkg/metrics"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		data  string
		input string
	)

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Erasure-code bytes into a stream of columns",
		Long: `Encode splits the input into rows of N bytes and extends each row with M
parity bytes. The result has N+M columns and any N of them rebuild the
input. Input comes from --data, --input or standard input.

Use --output json to produce a stream the decode command can read.`,
		Example: `  rsphrase encode --encoding rs=6.4 --data "Test string" -o json > stream.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readInput(cmd, data, input)
			if err != nil {
				return err
			}

			enc, err := a.cfg.EncodingValue()
			if err != nil {
				return err
			}
			a.printVerbose("Encoding %d bytes with %s", len(payload), enc)

			var stream *erasure.Stream
			err = metrics.Observe(metrics.OpEncode, enc.String(), func() error {
				var err error
				stream, err = erasure.Encode(payload, enc)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to encode: %w", err)
			}
			metrics.RecordBytes(metrics.OpEncode, len(payload))

			return a.printer().PrintStream(stream)
		},
	}

	encodeCmd.Flags().String("encoding", "rs=6.4", "erasure code as rs=N.M (N data columns, M parity columns)")
	encodeCmd.Flags().StringVar(&data, "data", "", "literal input string")
	encodeCmd.Flags().StringVarP(&input, "input", "i", "", "input file, - for standard input")
	encodeCmd.MarkFlagsMutuallyExclusive("data", "input")
	return encodeCmd
}

// readInput returns the literal data when set, otherwise the contents of
// path, otherwise standard input.
func readInput(cmd *cobra.Command, data, path string) ([]byte, error) {
	if cmd.Flags().Changed("data") {
		return []byte(data), nil
	}
	if path == "" || path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return b, nil
	}
	// #nosec G304 - input path is provided by the user
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return b, nil
}
