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

// Package serializer provides encoding and decoding of report data in multiple formats.
//
// # Overview
//
// The serializer package handles conversion between report structures and output
// formats including CSV, JSON, YAML, and aligned tables. It also decodes JSON and
// YAML inputs such as the endpoint list, with format detection by file extension.
//
// # Supported Formats
//
// CSV:
//   - Header row plus one record per row, RFC 4180 quoting
//   - Suitable for spreadsheets and inventory tooling
//   - Write-only, requires a Tabular value
//
// JSON:
//   - Machine-parseable, indented representation
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Aligned columns for terminal viewing
//   - Write-only, requires a Tabular value
//
// # Usage - Encoding
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatCSV, "summary.csv")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = w.Serialize(ctx, table)
//
// # Usage - Decoding
//
//	deps, err := serializer.FromFile[[]endpoint.Deployment]("endpoints.yaml")
//
// Paths with .yaml or .yml extensions decode as YAML, everything else as JSON.
package serializer
