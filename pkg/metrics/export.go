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

package metrics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// WriteText writes every rsphrase metric family registered with g in the
// Prometheus text exposition format. A nil g means the default gatherer.
// Runtime and process families are skipped.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	prefix := Namespace + "_"
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteFile dumps the default gatherer's rsphrase metrics to path, for
// node_exporter's textfile collector or a one-shot inspection.
func WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics: create %s: %w", path, err)
	}
	if err := WriteText(f, nil); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
