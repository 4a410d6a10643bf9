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

import (
	"log/slog"

	"github.com/GouravHasura/scripts/pkg/metadata"
)

// CategoryCount is the model count one source contributes to one category.
type CategoryCount struct {
	SourceName string `json:"sourceName" yaml:"sourceName"`
	TotalCount int    `json:"totalCount" yaml:"totalCount"`
}

// Classification partitions a document's sources into the three category
// buckets. Each bucket keeps the sources' document order.
type Classification struct {
	TablesAndViews []CategoryCount `json:"tablesAndViews" yaml:"tablesAndViews"`
	Collections    []CategoryCount `json:"collections" yaml:"collections"`
	LogicalModels  []CategoryCount `json:"logicalModels" yaml:"logicalModels"`

	// Sources lists every source name in document order.
	Sources []string `json:"sources" yaml:"sources"`
}

// Bucket returns the counts of one category.
func (c *Classification) Bucket(cat Category) []CategoryCount {
	switch cat {
	case CategoryTablesAndViews:
		return c.TablesAndViews
	case CategoryCollections:
		return c.Collections
	case CategoryLogicalModels:
		return c.LogicalModels
	default:
		return nil
	}
}

// Classify sorts every source into its buckets.
//
// A relational-like source contributes its table count to tablesAndViews and
// its logical model count to logicalModels. A schemaless source contributes
// its table count to collections and nothing else. A nil or empty document
// yields empty buckets.
func Classify(doc *metadata.Document) *Classification {
	c := &Classification{
		TablesAndViews: []CategoryCount{},
		Collections:    []CategoryCount{},
		LogicalModels:  []CategoryCount{},
		Sources:        []string{},
	}
	if doc == nil {
		return c
	}

	for _, src := range doc.Sources {
		c.Sources = append(c.Sources, src.Name)

		switch KindOf(src.Kind) {
		case KindSchemaless:
			c.Collections = append(c.Collections, CategoryCount{SourceName: src.Name, TotalCount: src.TableCount})
			if src.LogicalModelCount > 0 {
				slog.Debug("ignoring logical models on schemaless source",
					"source", src.Name, "kind", src.Kind, "count", src.LogicalModelCount)
			}
		default:
			c.TablesAndViews = append(c.TablesAndViews, CategoryCount{SourceName: src.Name, TotalCount: src.TableCount})
			c.LogicalModels = append(c.LogicalModels, CategoryCount{SourceName: src.Name, TotalCount: src.LogicalModelCount})
		}
	}

	return c
}
