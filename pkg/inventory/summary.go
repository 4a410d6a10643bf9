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

package inventory

import (
	"fmt"

	"github.com/GouravHasura/scripts/pkg/errors"
	"github.com/GouravHasura/scripts/pkg/model"
)

// SourceBreakdown is the per-source row of a deployment summary.
type SourceBreakdown struct {
	SourceName     string `json:"sourceName" yaml:"sourceName"`
	TablesAndViews int    `json:"tablesAndViews" yaml:"tablesAndViews"`
	Collections    int    `json:"collections" yaml:"collections"`
	LogicalModels  int    `json:"logicalModels" yaml:"logicalModels"`
}

// Total returns the number of models the source contributes.
func (b SourceBreakdown) Total() int {
	return b.TablesAndViews + b.Collections + b.LogicalModels
}

// DeploymentSummary holds the reconciled counts of one deployment: the
// deployment-level totals and the per-source breakdown they are built from.
type DeploymentSummary struct {
	Endpoint            string            `json:"endpoint" yaml:"endpoint"`
	TotalTablesAndViews int               `json:"totalTablesAndViews" yaml:"totalTablesAndViews"`
	TotalCollections    int               `json:"totalCollections" yaml:"totalCollections"`
	TotalLogicalModels  int               `json:"totalLogicalModels" yaml:"totalLogicalModels"`
	TotalModels         int               `json:"totalModels" yaml:"totalModels"`
	Sources             []SourceBreakdown `json:"sources" yaml:"sources"`
}

// Aggregate reduces a classification to a DeploymentSummary.
//
// Category totals are the sums of each bucket. The breakdown has one row per
// source in document order, each looked up by name in every bucket with 0
// for buckets the source does not appear in. The result always reconciles;
// an ErrCodeInternal error is returned if it does not.
func Aggregate(endpoint string, c *model.Classification) (*DeploymentSummary, error) {
	if c == nil {
		c = model.Classify(nil)
	}

	totals := make(map[model.Category]int, 3)
	perSource := make(map[model.Category]map[string]int, 3)
	for _, cat := range model.Categories() {
		totals[cat] = sum(c.Bucket(cat))
		perSource[cat] = byName(c.Bucket(cat))
	}

	s := &DeploymentSummary{
		Endpoint:            endpoint,
		TotalTablesAndViews: totals[model.CategoryTablesAndViews],
		TotalCollections:    totals[model.CategoryCollections],
		TotalLogicalModels:  totals[model.CategoryLogicalModels],
		Sources:             make([]SourceBreakdown, 0, len(c.Sources)),
	}
	s.TotalModels = s.TotalTablesAndViews + s.TotalCollections + s.TotalLogicalModels

	for _, name := range c.Sources {
		s.Sources = append(s.Sources, SourceBreakdown{
			SourceName:     name,
			TablesAndViews: perSource[model.CategoryTablesAndViews][name],
			Collections:    perSource[model.CategoryCollections][name],
			LogicalModels:  perSource[model.CategoryLogicalModels][name],
		})
	}

	if err := s.Reconcile(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconcile verifies that the deployment totals and the breakdown agree.
func (s *DeploymentSummary) Reconcile() error {
	if got := s.TotalTablesAndViews + s.TotalCollections + s.TotalLogicalModels; got != s.TotalModels {
		return errors.NewWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("category totals sum to %d, total models is %d", got, s.TotalModels),
			map[string]any{"endpoint": s.Endpoint})
	}

	var tv, coll, lm int
	for _, b := range s.Sources {
		tv += b.TablesAndViews
		coll += b.Collections
		lm += b.LogicalModels
	}
	if tv != s.TotalTablesAndViews || coll != s.TotalCollections || lm != s.TotalLogicalModels {
		return errors.NewWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("breakdown (%d,%d,%d) does not match totals (%d,%d,%d)",
				tv, coll, lm, s.TotalTablesAndViews, s.TotalCollections, s.TotalLogicalModels),
			map[string]any{"endpoint": s.Endpoint})
	}
	return nil
}

func sum(counts []model.CategoryCount) int {
	total := 0
	for _, c := range counts {
		total += c.TotalCount
	}
	return total
}

func byName(counts []model.CategoryCount) map[string]int {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.SourceName] += c.TotalCount
	}
	return m
}
