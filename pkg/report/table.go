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
	"github.com/GouravHasura/scripts/pkg/header"
	"github.com/GouravHasura/scripts/pkg/inventory"
)

// Table is a report laid out in one shape. It implements serializer.Tabular.
type Table struct {
	cols    []string
	records [][]string
}

// NewTable lays rep out in shape s: a header, data rows in run order, and
// exactly one trailing totals row.
func NewTable(rep *inventory.Report, s Shape) *Table {
	rs := shapeFor(s)
	t := &Table{cols: rs.columns()}

	for _, res := range rep.Results {
		t.records = append(t.records, rs.rows(res)...)
	}
	t.records = append(t.records, rs.totals(rep.Totals))

	return t
}

// Columns returns the header row.
func (t *Table) Columns() []string {
	return t.cols
}

// Records returns the data rows followed by the totals row.
func (t *Table) Records() [][]string {
	return t.records
}

// Entry is one deployment in a structured report.
type Entry struct {
	Endpoint string                       `json:"endpoint" yaml:"endpoint"`
	Status   string                       `json:"status" yaml:"status"`
	Error    string                       `json:"error,omitempty" yaml:"error,omitempty"`
	Summary  *inventory.DeploymentSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Entry status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Document is the JSON/YAML form of a report.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Deployments []Entry          `json:"deployments" yaml:"deployments"`
	Totals      inventory.Totals `json:"totals" yaml:"totals"`
}

// NewDocument converts rep into its structured form.
func NewDocument(rep *inventory.Report, h *header.Header) *Document {
	d := &Document{
		Deployments: make([]Entry, 0, len(rep.Results)),
		Totals:      rep.Totals,
	}
	if h != nil {
		d.Header = *h
	}

	for _, res := range rep.Results {
		e := Entry{Endpoint: res.Endpoint, Status: StatusOK, Summary: res.Summary}
		if !res.OK() {
			e.Status = StatusError
			e.Summary = nil
			if res.Err != nil {
				e.Error = res.Err.Error()
			}
		}
		d.Deployments = append(d.Deployments, e)
	}
	return d
}
