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

// Package metadata retrieves and decodes metadata exports from deployments.
//
// Client.Fetch resolves the admin endpoint (a trailing /graphql becomes
// /metadata), posts a single export_metadata request with the admin secret
// in a header, and returns a Document listing each source with its table
// and logical model counts.
//
// Request:
//
//	POST /v1/metadata
//	accept: */*
//	content-type: application/json
//	x-hasura-admin-secret: <secret>
//
//	{"type":"export_metadata","version":2,"args":{}}
//
// Failures are structured errors: errors.ErrCodeTransport for connection
// failures, non-2xx statuses, timeouts, and bodies that are not JSON;
// errors.ErrCodeShape for JSON that lacks the fields the audit needs.
// No request is retried.
package metadata
