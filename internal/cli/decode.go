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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-rsphrase/pkg/erasure"
	"github.com/jeremyhahn/go-rsphrase/pkg/metrics"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		streamPath string
		erase      []int
	)

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Rebuild bytes from an erasure-coded stream",
		Long: `Decode reads a JSON stream produced by "encode -o json" and rebuilds the
original bytes from any N valid columns. Columns listed with --erase are
treated as lost, which is handy for checking that a stream survives the
loss of up to M columns.`,
		Example: `  rsphrase decode --stream stream.json --erase 0,1,8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, "", streamPath)
			if err != nil {
				return err
			}
			var stream erasure.Stream
			if err := json.Unmarshal(raw, &stream); err != nil {
				return fmt.Errorf("%w: %v", erasure.ErrMalformedStream, err)
			}
			stream.Erase(erase...)

			total := len(stream.Valid)
			a.printVerbose("Decoding %s stream of %d bytes, %d of %d columns valid",
				stream.Encoding, stream.Length, stream.ValidCount(), total)

			var data []byte
			err = metrics.Observe(metrics.OpDecode, stream.Encoding.String(), func() error {
				var err error
				data, err = erasure.Decode(&stream)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to decode: %w", err)
			}
			metrics.RecordErasures(metrics.OpDecode, total-stream.ValidCount())
			metrics.RecordBytes(metrics.OpDecode, len(data))

			used := stream.ValidIndices()
			if len(used) > stream.Encoding.DataChunks {
				used = used[:stream.Encoding.DataChunks]
			}
			return a.printer().PrintDecoded(&DecodeResult{
				Length:  len(data),
				Data:    data,
				Columns: used,
			})
		},
	}

	decodeCmd.Flags().StringVarP(&streamPath, "stream", "s", "", "stream JSON file, - for standard input")
	decodeCmd.Flags().IntSliceVar(&erase, "erase", nil, "column indices to treat as lost")
	return decodeCmd
}
