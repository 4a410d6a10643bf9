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

package model

// Kind is the closed set of source categories the audit distinguishes.
type Kind string

const (
	// KindRelational sources expose tables/views and logical models.
	KindRelational Kind = "relational-like"
	// KindSchemaless sources expose collections only.
	KindSchemaless Kind = "schemaless"
)

// schemalessKinds lists raw backend kinds whose tracked "tables" are
// collections. Every other raw kind is relational-like.
var schemalessKinds = map[string]Kind{
	"mongo": KindSchemaless,
}

// KindOf maps a raw source kind onto its category. Matching is exact:
// "Mongo" or " mongo " are relational-like.
func KindOf(raw string) Kind {
	if k, ok := schemalessKinds[raw]; ok {
		return k
	}
	return KindRelational
}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// Category is one of the three model buckets counted per source.
type Category string

const (
	CategoryTablesAndViews Category = "tablesAndViews"
	CategoryCollections    Category = "collections"
	CategoryLogicalModels  Category = "logicalModels"
)

// Categories returns the buckets in report column order.
func Categories() []Category {
	return []Category{CategoryTablesAndViews, CategoryCollections, CategoryLogicalModels}
}
