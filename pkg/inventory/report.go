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
	"github.com/GouravHasura/scripts/pkg/errors"
)

// Result is the outcome of auditing one deployment: a summary or an error,
// never both.
type Result struct {
	Endpoint string             `json:"endpoint" yaml:"endpoint"`
	Summary  *DeploymentSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
	Err      error              `json:"-" yaml:"-"`
}

// Succeeded returns a successful Result.
func Succeeded(s *DeploymentSummary) Result {
	return Result{Endpoint: s.Endpoint, Summary: s}
}

// Failed returns a failed Result for endpoint.
func Failed(endpoint string, err error) Result {
	if err == nil {
		err = errors.New(errors.ErrCodeInternal, "deployment failed without an error")
	}
	return Result{Endpoint: endpoint, Err: err}
}

// OK reports whether the deployment was audited successfully.
func (r Result) OK() bool {
	return r.Err == nil && r.Summary != nil
}

// Totals are the column sums over every successful deployment.
type Totals struct {
	TablesAndViews int `json:"tablesAndViews" yaml:"tablesAndViews"`
	Collections    int `json:"collections" yaml:"collections"`
	LogicalModels  int `json:"logicalModels" yaml:"logicalModels"`
	Models         int `json:"models" yaml:"models"`
	Deployments    int `json:"deployments" yaml:"deployments"`
	Failed         int `json:"failed" yaml:"failed"`
}

// Report is the ordered result set of one run plus its totals.
type Report struct {
	Results []Result `json:"results" yaml:"results"`
	Totals  Totals   `json:"totals" yaml:"totals"`
}

// NewReport totals results. Failed deployments are counted in Failed and
// excluded from every model sum.
func NewReport(results []Result) *Report {
	r := &Report{Results: results}
	r.Totals.Deployments = len(results)

	for _, res := range results {
		if !res.OK() {
			r.Totals.Failed++
			continue
		}
		s := res.Summary
		r.Totals.TablesAndViews += s.TotalTablesAndViews
		r.Totals.Collections += s.TotalCollections
		r.Totals.LogicalModels += s.TotalLogicalModels
		r.Totals.Models += s.TotalModels
	}

	return r
}

// Failures returns the failed results in run order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}
