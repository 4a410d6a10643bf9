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

// Package report serializes an audit report.
//
// Two row shapes are supported for CSV and table output:
//
// Deployment (one row per deployment):
//
//	Endpoint,TotalTablesAndViews,TotalCollections,TotalLogicalModels,TotalModels
//	A,5,0,2,7
//	B,0,3,0,3
//	C,Error,Error,Error,Error
//	Total,5,3,2,10
//
// Source (one row per deployment and source):
//
//	Endpoint,Source,TotalTablesAndViews,TotalCollections,TotalLogicalModels,TotalProjectModels
//	A,default,5,0,2,7
//	B,docs,0,3,0,3
//	C,Error,Error,Error,Error,Error
//	Total,All,5,3,2,10
//
// Failed deployments keep their row with Error in every numeric cell and are
// left out of the totals row. JSON and YAML output carry the full summaries
// under a header instead of rows.
//
// The writer only lays out numbers computed by package inventory, so the
// totals row always matches the totals used elsewhere in the run.
package report
