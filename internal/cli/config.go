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
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the --config file,
RSPHRASE_* environment variables and command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printer().PrintConfig(a.cfg)
		},
	})
	return configCmd
}
