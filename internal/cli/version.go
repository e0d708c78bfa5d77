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
	"runtime"

	"github.com/spf13/cobra"
)

// Version information (injected at build time via -ldflags)
var (
	Version   = "dev"     // Set via -ldflags "-X github.com/jeremyhahn/go-rsphrase/internal/cli.Version=x.y.z"
	GitCommit = "unknown" // Set via -ldflags "-X github.com/jeremyhahn/go-rsphrase/internal/cli.GitCommit=abc123"
	BuildDate = "unknown" // Set via -ldflags "-X github.com/jeremyhahn/go-rsphrase/internal/cli.BuildDate=2025-01-15"
)

// versionInfo is the structured form of the version command
type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version information for the rsphrase CLI`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   Version,
				Commit:    GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				OS:        runtime.GOOS,
				Arch:      runtime.GOARCH,
			}
			return a.printer().render(info, func(w io.Writer) {
				fmt.Fprintf(w, "rsphrase version %s\n", info.Version)
				fmt.Fprintf(w, "Git commit: %s\n", info.Commit)
				fmt.Fprintf(w, "Build date: %s\n", info.BuildDate)
				fmt.Fprintf(w, "Go version: %s\n", info.GoVersion)
				fmt.Fprintf(w, "OS/Arch: %s/%s\n", info.OS, info.Arch)
			})
		},
	}
}
