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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-rsphrase/internal/config"
	"github.com/jeremyhahn/go-rsphrase/pkg/erasure"
	"github.com/jeremyhahn/go-rsphrase/pkg/shares"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = config.OutputText
	OutputFormatJSON OutputFormat = config.OutputJSON
	OutputFormatYAML OutputFormat = config.OutputYAML
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(strings.ToLower(format)),
		writer: writer,
	}
}

// DecodeResult is the structured form of a decoded stream
type DecodeResult struct {
	Length  int    `json:"length" yaml:"length"`
	Data    []byte `json:"data" yaml:"data"`
	Columns []int  `json:"columns_used" yaml:"columns_used"`
}

// SecretResult is the structured form of a restored secret
type SecretResult struct {
	Words  int    `json:"words" yaml:"words"`
	Secret string `json:"secret" yaml:"secret"`
}

// PrintStream prints an encoded stream. JSON output is what decode reads.
func (p *Printer) PrintStream(s *erasure.Stream) error {
	return p.render(s, func(w io.Writer) {
		fmt.Fprintf(w, "Encoding: %s\n", s.Encoding)
		fmt.Fprintf(w, "Length:   %d\n", s.Length)
		fmt.Fprintf(w, "Rows:     %d\n", s.RowCount())
		fmt.Fprintln(w, "Columns:")
		for i, col := range s.Columns {
			state := "valid"
			if !s.Valid[i] {
				state = "erased"
			}
			fmt.Fprintf(w, "  [%3d] %-8s %s\n", i, state, hex.EncodeToString(col))
		}
	})
}

// PrintDecoded prints data recovered by decode
func (p *Printer) PrintDecoded(res *DecodeResult) error {
	return p.render(res, func(w io.Writer) {
		fmt.Fprintln(w, string(res.Data))
	})
}

// PrintShareSet prints a freshly generated secret and its shares
func (p *Printer) PrintShareSet(set *shares.ShareSet) error {
	return p.render(set, func(w io.Writer) {
		fmt.Fprintf(w, "Share set %s: any %d of %d shares restore the secret\n",
			set.ID, set.Required, len(set.Phrases))
		fmt.Fprintf(w, "Secret: %s\n", set.SecretPhrase)
		fmt.Fprintln(w, "Shares:")
		for i, phrase := range set.Phrases {
			fmt.Fprintf(w, "  %d: %s\n", i+1, phrase)
		}
	})
}

// PrintSecret prints a restored secret phrase
func (p *Printer) PrintSecret(res *SecretResult) error {
	return p.render(res, func(w io.Writer) {
		fmt.Fprintln(w, res.Secret)
	})
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) error {
	return p.render(map[string]interface{}{
		"status":  "success",
		"message": message,
	}, func(w io.Writer) {
		fmt.Fprintln(w, message)
	})
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	return p.render(map[string]interface{}{
		"status": "error",
		"error":  err.Error(),
	}, func(w io.Writer) {
		fmt.Fprintf(w, "Error: %v\n", err)
	})
}

// PrintConfig prints the effective configuration
func (p *Printer) PrintConfig(cfg *config.Config) error {
	if p.format == OutputFormatText {
		return p.printYAML(cfg)
	}
	return p.render(cfg, nil)
}

// render writes v as JSON or YAML, or calls text for the text format.
func (p *Printer) render(v interface{}, text func(w io.Writer)) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(v)
	case OutputFormatYAML:
		return p.printYAML(v)
	case OutputFormatText:
		text(p.writer)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (p *Printer) printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(p.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}
