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

package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/GouravHasura/scripts/pkg/defaults"
	"github.com/GouravHasura/scripts/pkg/endpoint"
	"github.com/GouravHasura/scripts/pkg/errors"
	"github.com/GouravHasura/scripts/pkg/inventory"
	"github.com/GouravHasura/scripts/pkg/logging"
	"github.com/GouravHasura/scripts/pkg/metadata"
	"github.com/GouravHasura/scripts/pkg/model"
)

// Auditor runs the fetch, classify and aggregate pipeline for every
// deployment and collects one Result per deployment.
// A failing deployment is recorded and never stops the others.
type Auditor struct {
	// Fetcher retrieves metadata documents. Required.
	Fetcher metadata.Fetcher

	// Concurrency is the number of deployments audited at once.
	// Values below 1 mean sequential.
	Concurrency int

	// Limiter paces outbound requests. Nil means unlimited.
	Limiter *rate.Limiter

	// Terminal receives one line per failed deployment. Defaults to os.Stdout.
	Terminal io.Writer

	// RunID correlates log records of one run. Generated when empty.
	RunID string

	mu sync.Mutex
}

// NewLimiter returns a limiter allowing perSecond requests per second,
// or nil when perSecond is not positive.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// Run audits deps and returns the report. Results keep the order of deps
// regardless of Concurrency.
func (a *Auditor) Run(ctx context.Context, deps []endpoint.Deployment) *inventory.Report {
	if a.RunID == "" {
		a.RunID = uuid.NewString()
	}
	log := slog.With(slog.String("run_id", a.RunID))

	start := time.Now()
	defer func() {
		auditRunDuration.Observe(time.Since(start).Seconds())
	}()

	limit := a.Concurrency
	if limit < 1 {
		limit = 1
	}
	if limit > defaults.MaxConcurrency {
		limit = defaults.MaxConcurrency
	}

	log.Info("starting audit",
		slog.Int("deployments", len(deps)),
		slog.Int("concurrency", limit))

	results := make([]inventory.Result, len(deps))

	// Tasks never return an error, so the group context is not needed:
	// one deployment failing must not cancel the others.
	var g errgroup.Group
	g.SetLimit(limit)

	for i, dep := range deps {
		g.Go(func() error {
			results[i] = a.audit(ctx, log, dep)
			return nil
		})
	}
	_ = g.Wait()

	rep := inventory.NewReport(results)

	auditModelCount.WithLabelValues("tables_and_views").Set(float64(rep.Totals.TablesAndViews))
	auditModelCount.WithLabelValues("collections").Set(float64(rep.Totals.Collections))
	auditModelCount.WithLabelValues("logical_models").Set(float64(rep.Totals.LogicalModels))
	auditModelCount.WithLabelValues("total").Set(float64(rep.Totals.Models))

	log.Info("audit complete",
		slog.Int("deployments", rep.Totals.Deployments),
		slog.Int("failed", rep.Totals.Failed),
		slog.Int("models", rep.Totals.Models),
		slog.Duration("duration", time.Since(start)))

	return rep
}

func (a *Auditor) audit(ctx context.Context, log *slog.Logger, dep endpoint.Deployment) inventory.Result {
	res := a.summarize(ctx, dep)
	if res.OK() {
		auditDeploymentTotal.WithLabelValues(statusSuccess).Inc()
		log.Debug("deployment audited",
			slog.Any("deployment", dep),
			slog.Int("models", res.Summary.TotalModels))
		return res
	}

	auditDeploymentTotal.WithLabelValues(statusError).Inc()
	// The error text ends up in logs, the terminal and structured reports.
	res.Err = logging.RedactError(res.Err, dep.Secret)
	cause := res.Err.Error()
	log.Warn("deployment audit failed",
		slog.Any("deployment", dep),
		slog.String("code", string(errors.CodeOf(res.Err))),
		slog.String("error", cause))
	a.printf("Error fetching metadata for %s: %s\n", logging.Redact(dep.Endpoint), cause)

	return res
}

func (a *Auditor) summarize(ctx context.Context, dep endpoint.Deployment) inventory.Result {
	if a.Fetcher == nil {
		return inventory.Failed(dep.Endpoint, errors.New(errors.ErrCodeInternal, "auditor has no metadata fetcher"))
	}

	if a.Limiter != nil {
		if err := a.Limiter.Wait(ctx); err != nil {
			return inventory.Failed(dep.Endpoint, errors.Wrap(errors.ErrCodeTimeout, "rate limiter wait aborted", err))
		}
	}

	fetchStart := time.Now()
	doc, err := a.Fetcher.Fetch(ctx, dep)
	auditFetchDuration.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		return inventory.Failed(dep.Endpoint, err)
	}

	summary, err := inventory.Aggregate(dep.Endpoint, model.Classify(doc))
	if err != nil {
		return inventory.Failed(dep.Endpoint, err)
	}
	return inventory.Succeeded(summary)
}

func (a *Auditor) printf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.Terminal
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}
