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

// Package model classifies data sources into model categories.
//
// Every raw source kind maps onto a closed Kind through a lookup table:
// "mongo" is schemaless, everything else is relational-like. Adding a new
// schemaless backend is a one-line edit to that table.
//
// Counting rules:
//
//	relational-like: tables -> tablesAndViews, logical_models -> logicalModels
//	schemaless:      tables -> collections
//
// A source lands in exactly one of tablesAndViews and collections.
package model
