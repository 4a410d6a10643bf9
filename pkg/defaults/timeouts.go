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

package defaults

import "time"

// HTTP client timeouts for outbound metadata requests.
const (
	// HTTPClientTimeout is the default total timeout for one metadata request.
	// A hung deployment blocks its pipeline for at most this long.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	// Metadata exports are computed server side, so this is generous.
	HTTPResponseHeaderTimeout = 20 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Limits for metadata documents.
const (
	// MetadataMaxBytes caps the size of a metadata export read into memory.
	MetadataMaxBytes int64 = 256 << 20
)

// Audit run defaults.
const (
	// ConfigFile is the endpoint list read when --config is not given.
	ConfigFile = "endpoints.json"

	// OutputFile is the report written when --output is not given.
	OutputFile = "metadata_summary.csv"

	// AdminSecretHeader carries the deployment credential on metadata requests.
	AdminSecretHeader = "x-hasura-admin-secret"

	// Concurrency is the number of deployment pipelines run at once.
	// One keeps the run strictly sequential.
	Concurrency = 1

	// MaxConcurrency bounds --concurrency.
	MaxConcurrency = 32
)
