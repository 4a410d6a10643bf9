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

// Package audit runs the model audit over a list of deployments.
//
// For each deployment the Auditor fetches the exported metadata document,
// classifies its sources and aggregates the counts into an
// inventory.DeploymentSummary. Failures are captured per deployment as an
// inventory.Result carrying the error; the run always completes and returns
// an inventory.Report covering every deployment in configuration order.
//
// Usage:
//
//	a := &audit.Auditor{
//		Fetcher:     metadata.NewClient(metadata.WithTimeout(30 * time.Second)),
//		Concurrency: 4,
//		Limiter:     audit.NewLimiter(10),
//	}
//	rep := a.Run(ctx, deployments)
//
// Concurrency defaults to 1, which audits deployments one at a time. The
// package exports Prometheus metrics on the default registry:
//
//   - modelaudit_run_duration_seconds
//   - modelaudit_deployments_total{status}
//   - modelaudit_metadata_fetch_duration_seconds
//   - modelaudit_models{category}
//
// WriteMetrics dumps them to a textfile after the run.
package audit
