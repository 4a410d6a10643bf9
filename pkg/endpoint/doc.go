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

// Package endpoint loads the list of deployments to audit.
//
// The list is a JSON (default) or YAML file holding an array of records:
//
//	[
//	  {"endpoint": "https://a.example.com/v1/graphql", "secret": "..."},
//	  {"endpoint": "https://b.example.com/v1/metadata", "secret": "..."}
//	]
//
// A missing, unreadable, or malformed file is an errors.ErrCodeConfig error,
// which aborts the run before any request is made.
package endpoint
