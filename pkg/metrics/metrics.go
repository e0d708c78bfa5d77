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

// Package metrics provides Prometheus instrumentation for go-rsphrase operations.
// It counts erasure-code and secret-sharing operations, observes their
// latency, and classifies failures by the sentinel error they wrap.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all rsphrase metrics
	Namespace = "rsphrase"

	// Label names
	LabelOperation = "operation"
	LabelEncoding  = "encoding"
	LabelStatus    = "status"
	LabelErrorType = "error_type"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpEncode   = "encode"
	OpDecode   = "decode"
	OpGenerate = "generate"
	OpRestore  = "restore"
)

var (
	// OperationsTotal tracks operations by name, encoding and status.
	// Use RecordOperation to increment this counter with the appropriate labels.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of rsphrase operations by type, encoding, and status",
		},
		[]string{LabelOperation, LabelEncoding, LabelStatus},
	)

	// OperationDuration tracks operation latency in seconds. Field arithmetic
	// on small inputs finishes in microseconds so the buckets start low.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of rsphrase operations in seconds",
			Buckets:   []float64{.00001, .0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{LabelOperation, LabelEncoding},
	)

	// ErrorsTotal tracks failures by operation and error type (see ErrorType).
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "Total number of errors by operation and error type",
		},
		[]string{LabelOperation, LabelErrorType},
	)

	// BytesTotal tracks payload bytes fed into each operation.
	BytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "bytes_total",
			Help:      "Total payload bytes processed by operation",
		},
		[]string{LabelOperation},
	)

	// ErasedColumns observes how many columns were missing at decode time.
	ErasedColumns = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "erased_columns",
			Help:      "Number of missing columns per decode or restore",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		},
		[]string{LabelOperation},
	)

	// enabled tracks whether metrics collection is enabled
	enabled atomic.Bool
)

func init() {
	// Metrics are enabled by default
	enabled.Store(true)
}

// RecordOperation records an operation with its duration and status.
//
// Example:
//
//	start := time.Now()
//	stream, err := erasure.Encode(data, enc)
//	status := metrics.StatusSuccess
//	if err != nil {
//	    status = metrics.StatusError
//	}
//	metrics.RecordOperation(metrics.OpEncode, enc.String(), status, time.Since(start).Seconds())
func RecordOperation(operation, encoding, status string, duration float64) {
	if !enabled.Load() {
		return
	}
	OperationsTotal.WithLabelValues(operation, encoding, status).Inc()
	OperationDuration.WithLabelValues(operation, encoding).Observe(duration)
}

// RecordError records a failed operation under errorType.
func RecordError(operation, errorType string) {
	if !enabled.Load() {
		return
	}
	ErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// RecordBytes adds n payload bytes to the operation's counter.
func RecordBytes(operation string, n int) {
	if !enabled.Load() || n <= 0 {
		return
	}
	BytesTotal.WithLabelValues(operation).Add(float64(n))
}

// RecordErasures observes the number of columns missing for an operation.
func RecordErasures(operation string, missing int) {
	if !enabled.Load() {
		return
	}
	ErasedColumns.WithLabelValues(operation).Observe(float64(missing))
}

// Enable enables metrics collection.
func Enable() {
	enabled.Store(true)
}

// Disable disables metrics collection.
// Useful for testing or when metrics are not desired.
func Disable() {
	enabled.Store(false)
}

// IsEnabled returns whether metrics collection is currently enabled.
func IsEnabled() bool {
	return enabled.Load()
}
