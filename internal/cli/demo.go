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
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-rsphrase/pkg/erasure"
	"github.com/jeremyhahn/go-rsphrase/pkg/metrics"
)

const demoInput = "Test string"

// demoResult is the structured form of the demo walk-through
type demoResult struct {
	Input     string          `json:"input" yaml:"input"`
	Bytes     []int           `json:"bytes" yaml:"bytes"`
	Stream    *erasure.Stream `json:"stream" yaml:"stream"`
	Erased    []int           `json:"erased" yaml:"erased"`
	Recovered string          `json:"recovered" yaml:"recovered"`
	Match     bool            `json:"match" yaml:"match"`
}

func newDemoCmd(a *app) *cobra.Command {
	var erase []int

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Encode a sample string, lose columns and rebuild it",
		Long: `Demo encodes "Test string" with the configured encoding (rs=6.4 by
default), prints the columns, marks the --erase columns as lost and
decodes the remainder.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := a.cfg.EncodingValue()
			if err != nil {
				return err
			}

			var stream *erasure.Stream
			err = metrics.Observe(metrics.OpEncode, enc.String(), func() error {
				var err error
				stream, err = erasure.Encode([]byte(demoInput), enc)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to encode: %w", err)
			}

			damaged := stream.Clone()
			damaged.Erase(erase...)
			a.printVerbose("Erased columns %v, %d of %d remain", erase, damaged.ValidCount(), enc.Total())

			var data []byte
			err = metrics.Observe(metrics.OpDecode, enc.String(), func() error {
				var err error
				data, err = erasure.Decode(damaged)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to decode: %w", err)
			}
			metrics.RecordErasures(metrics.OpDecode, enc.Total()-damaged.ValidCount())

			res := &demoResult{
				Input:     demoInput,
				Bytes:     make([]int, len(demoInput)),
				Stream:    stream,
				Erased:    erase,
				Recovered: string(data),
				Match:     bytes.Equal(data, []byte(demoInput)),
			}
			for i := 0; i < len(demoInput); i++ {
				res.Bytes[i] = int(demoInput[i])
			}

			return a.printer().render(res, func(w io.Writer) {
				fmt.Fprintf(w, "Bytes: %v\n", res.Bytes)
				fmt.Fprintf(w, "Length: %d\n", stream.Length)
				fmt.Fprintf(w, "Encoding: %s\n", stream.Encoding)
				fmt.Fprintf(w, "Codes: %v\n", stream.Columns)
				fmt.Fprintf(w, "Erased: %v\n", erase)
				fmt.Fprintf(w, "Recovered: %q\n", res.Recovered)
			})
		},
	}

	demoCmd.Flags().String("encoding", "rs=6.4", "erasure code as rs=N.M")
	demoCmd.Flags().IntSliceVar(&erase, "erase", []int{0, 1, 8}, "column indices to drop before decoding")
	return demoCmd
}
