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

// Package inventory aggregates classified counts into deployment summaries
// and a run report.
//
// A DeploymentSummary carries both report shapes at once: deployment-level
// totals and a per-source breakdown. Aggregate builds both from the same
// classification and checks they reconcile:
//
//	TotalModels == TotalTablesAndViews + TotalCollections + TotalLogicalModels
//	TotalModels == sum of breakdown row totals
//
// A Report collects one Result per deployment in run order. Its Totals sum
// successful deployments only; failed ones are kept as results so they stay
// visible in the output.
package inventory
