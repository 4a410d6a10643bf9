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

package report

import (
	"fmt"
	"strconv"

	"github.com/GouravHasura/scripts/pkg/inventory"
)

// Shape selects how a report is laid out as rows.
type Shape string

const (
	// ShapeDeployment writes one row per deployment.
	ShapeDeployment Shape = "deployment"
	// ShapeSource writes one row per (deployment, source) pair.
	ShapeSource Shape = "source"
)

const (
	// ErrorCell replaces every numeric cell of a failed deployment.
	ErrorCell = "Error"
	// TotalLabel is the Endpoint cell of the totals row.
	TotalLabel = "Total"
	// AllSourcesLabel is the Source cell of the per-source totals row.
	AllSourcesLabel = "All"
)

// SupportedShapes returns the valid shape names.
func SupportedShapes() []string {
	return []string{string(ShapeDeployment), string(ShapeSource)}
}

// ParseShape validates a shape name.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeDeployment, ShapeSource:
		return Shape(s), nil
	default:
		return "", fmt.Errorf("unknown report shape %q, supported values: %v", s, SupportedShapes())
	}
}

// rowShape lays out already aggregated numbers as rows. It never computes
// counts of its own beyond formatting.
type rowShape interface {
	columns() []string
	rows(res inventory.Result) [][]string
	totals(t inventory.Totals) []string
}

func shapeFor(s Shape) rowShape {
	if s == ShapeSource {
		return sourceShape{}
	}
	return deploymentShape{}
}

type deploymentShape struct{}

func (deploymentShape) columns() []string {
	return []string{"Endpoint", "TotalTablesAndViews", "TotalCollections", "TotalLogicalModels", "TotalModels"}
}

func (deploymentShape) rows(res inventory.Result) [][]string {
	if !res.OK() {
		return [][]string{{res.Endpoint, ErrorCell, ErrorCell, ErrorCell, ErrorCell}}
	}
	s := res.Summary
	return [][]string{{
		res.Endpoint,
		itoa(s.TotalTablesAndViews),
		itoa(s.TotalCollections),
		itoa(s.TotalLogicalModels),
		itoa(s.TotalModels),
	}}
}

func (deploymentShape) totals(t inventory.Totals) []string {
	return []string{TotalLabel, itoa(t.TablesAndViews), itoa(t.Collections), itoa(t.LogicalModels), itoa(t.Models)}
}

type sourceShape struct{}

func (sourceShape) columns() []string {
	return []string{"Endpoint", "Source", "TotalTablesAndViews", "TotalCollections", "TotalLogicalModels", "TotalProjectModels"}
}

// rows repeats the deployment total in TotalProjectModels on every source row.
// A deployment without sources still gets one zero row.
func (sourceShape) rows(res inventory.Result) [][]string {
	if !res.OK() {
		return [][]string{{res.Endpoint, ErrorCell, ErrorCell, ErrorCell, ErrorCell, ErrorCell}}
	}
	s := res.Summary
	if len(s.Sources) == 0 {
		return [][]string{{res.Endpoint, "", "0", "0", "0", itoa(s.TotalModels)}}
	}

	out := make([][]string, 0, len(s.Sources))
	for _, b := range s.Sources {
		out = append(out, []string{
			res.Endpoint,
			b.SourceName,
			itoa(b.TablesAndViews),
			itoa(b.Collections),
			itoa(b.LogicalModels),
			itoa(s.TotalModels),
		})
	}
	return out
}

// totals counts each deployment's total once, not once per source row.
func (sourceShape) totals(t inventory.Totals) []string {
	return []string{TotalLabel, AllSourcesLabel, itoa(t.TablesAndViews), itoa(t.Collections), itoa(t.LogicalModels), itoa(t.Models)}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
