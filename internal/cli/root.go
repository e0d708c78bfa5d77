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

// Package cli implements the rsphrase command line: erasure coding of byte
// streams and splitting secrets into word-phrase shares.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-rsphrase/internal/config"
	"github.com/jeremyhahn/go-rsphrase/pkg/logging"
	"github.com/jeremyhahn/go-rsphrase/pkg/metrics"
	"github.com/jeremyhahn/go-rsphrase/pkg/words"
)

// commandFlagKeys maps subcommand flags to configuration keys. Several
// commands share a flag name, so binding happens for the running command
// only.
var commandFlagKeys = map[string]string{
	"encoding": config.KeyEncoding,
	"total":    config.KeySharesTotal,
	"required": config.KeySharesRequired,
	"words":    config.KeySharesWords,
}

// app carries the state shared by every command of one invocation.
type app struct {
	v          *viper.Viper
	configFile string

	cfg    *config.Config
	codec  words.Codec
	logger *logging.Logger

	stdout io.Writer
	stderr io.Writer
}

// NewRootCommand builds the rsphrase command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "rsphrase",
		Short: "rsphrase - Reed-Solomon erasure coding and word-phrase secret sharing",
		Long: `rsphrase splits data into Reed-Solomon columns over GF(256) so that any
N of N+M columns rebuild it, and splits a secret into word phrases so that
any "required" phrases restore it while fewer reveal nothing.

Commands:
  - encode:   erasure-code bytes into a JSON stream
  - decode:   rebuild bytes from a stream with missing columns
  - generate: split a secret into word-phrase shares
  - restore:  rebuild a secret from word-phrase shares
  - demo:     encode "Test string", drop columns and rebuild it`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.flushMetrics()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (YAML)")
	flags.StringP("output", "o", config.OutputText, "output format (text, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("wordlist", "", "path to a 256-word vocabulary (default built-in)")
	flags.String("metrics-out", "", "write Prometheus metrics to this file on exit")

	_ = a.v.BindPFlag(config.KeyOutput, flags.Lookup("output"))
	_ = a.v.BindPFlag(config.KeyVerbose, flags.Lookup("verbose"))
	_ = a.v.BindPFlag(config.KeyWordList, flags.Lookup("wordlist"))
	_ = a.v.BindPFlag(config.KeyMetricsPath, flags.Lookup("metrics-out"))

	rootCmd.AddCommand(
		newVersionCmd(a),
		newConfigCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newGenerateCmd(a),
		newRestoreCmd(a),
		newDemoCmd(a),
	)
	return rootCmd
}

// Execute runs the root command against os.Args. Errors are printed in the
// selected output format before being returned.
func Execute() error {
	cmd := NewRootCommand()
	err := cmd.Execute()
	if err != nil {
		handleError(cmd, err)
	}
	return err
}

// setup loads configuration once flags are parsed.
func (a *app) setup(cmd *cobra.Command) error {
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()

	for name, key := range commandFlagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	codec, err := cfg.Codec()
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	a.codec = codec
	a.logger = logging.NewLoggerWithWriter(a.stderr, cfg.Verbose)

	if cfg.Metrics.Enabled {
		metrics.Enable()
	} else {
		metrics.Disable()
	}
	return nil
}

// flushMetrics writes the metric dump when a path is configured.
func (a *app) flushMetrics() error {
	if a.cfg == nil || a.cfg.Metrics.Path == "" || !a.cfg.Metrics.Enabled {
		return nil
	}
	a.printVerbose("Writing metrics to %s", a.cfg.Metrics.Path)
	return metrics.WriteFile(a.cfg.Metrics.Path)
}

// printer returns a Printer for the configured output format.
func (a *app) printer() *Printer {
	return NewPrinter(a.cfg.Output, a.stdout)
}

// handleError prints an error to the command's error stream
func handleError(cmd *cobra.Command, err error) {
	format := config.OutputText
	if f := cmd.PersistentFlags().Lookup("output"); f != nil {
		format = f.Value.String()
	}
	printer := NewPrinter(format, cmd.ErrOrStderr())
	if printer.PrintError(err) != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// printVerbose prints a message if verbose mode is enabled
func (a *app) printVerbose(format string, args ...interface{}) {
	if a.cfg != nil && a.cfg.Verbose {
		fmt.Fprintf(a.stderr, "[VERBOSE] "+format+"\n", args...)
	}
}
