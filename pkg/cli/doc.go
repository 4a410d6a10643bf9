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

// Package cli implements the modelaudit command-line interface.
//
// # Commands
//
// audit - Count the models tracked by every configured deployment:
//
//	modelaudit audit --config endpoints.json --output metadata_summary.csv
//
// Reads the endpoint list, fetches each deployment's exported metadata and
// writes a report with a totals row. Failed deployments are reported with
// Error cells and do not stop the run.
//
// version - Print build information:
//
//	modelaudit version
//
// # Audit Flags
//
//	--config, -c          Endpoint list file (default: endpoints.json)
//	--output, -o          Report file, "-" for stdout (default: metadata_summary.csv)
//	--format, -t          Report format: csv, json, yaml, table (default: from --output)
//	--shape               Row shape: deployment or source (default: deployment)
//	--timeout             Per-request timeout (default: 30s)
//	--secret-header       Header carrying the secret (default: x-hasura-admin-secret)
//	--concurrency         Deployments audited at once (default: 1)
//	--rate-limit          Requests per second, 0 for unlimited (default: 0)
//	--metrics-file        Prometheus textfile written after the run
//	--insecure-skip-verify  Skip TLS verification
//
// Every flag can also be set with a MODELAUDIT_ prefixed environment
// variable, for example MODELAUDIT_CONCURRENCY=4.
//
// # Output Formats
//
// CSV (default):
//   - One row per deployment or per source, then a Total row
//   - Failed deployments carry Error in every count column
//
// JSON and YAML:
//   - Header with kind, apiVersion, timestamp, version and run id
//   - Full per-deployment summaries including the source breakdown
//
// Table:
//   - The CSV rows as aligned columns, for terminal viewing
//
// # Environment Variables
//
//	LOG_LEVEL          Set logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success, including runs where some deployments failed
//	1  Invalid flags, unreadable endpoint list, or report write failure
package cli
