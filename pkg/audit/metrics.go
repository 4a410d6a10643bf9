// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package audit

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	// Run metrics
	auditRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "modelaudit_run_duration_seconds",
			Help:    "Time taken to audit every configured deployment",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	auditDeploymentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modelaudit_deployments_total",
			Help: "Total number of deployment audits",
		},
		[]string{"status"}, // success or error
	)

	auditFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "modelaudit_metadata_fetch_duration_seconds",
			Help:    "Time taken to retrieve the metadata document of one deployment",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
	)

	auditModelCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "modelaudit_models",
			Help: "Number of models counted in the last run",
		},
		[]string{"category"}, // tables_and_views, collections, logical_models, total
	)
)

// WriteMetrics writes the current default registry to path in the
// Prometheus text exposition format, for node_exporter's textfile collector.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
