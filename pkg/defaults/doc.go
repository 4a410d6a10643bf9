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

// Package defaults provides centralized configuration constants for modelaudit.
//
// This package defines timeout values, size limits, and file names used across
// the codebase. Centralizing these values ensures consistency and makes tuning
// easier.
//
// # Categories
//
//   - HTTP client timeouts: For outbound metadata requests
//   - Limits: For the size of documents held in memory
//   - Audit run defaults: Config/output file names, credential header, concurrency
//
// # Usage
//
//	client := &http.Client{Timeout: defaults.HTTPClientTimeout}
//
// Timeouts are upper bounds. Callers should still respect shorter parent
// context deadlines.
package defaults
