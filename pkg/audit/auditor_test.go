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
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GouravHasura/scripts/pkg/endpoint"
	"github.com/GouravHasura/scripts/pkg/errors"
	"github.com/GouravHasura/scripts/pkg/metadata"
)

type fakeFetcher struct {
	docs map[string]*metadata.Document
	errs map[string]error

	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32

	mu    sync.Mutex
	calls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, dep endpoint.Deployment) (*metadata.Document, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, dep.Endpoint)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err, ok := f.errs[dep.Endpoint]; ok {
		return nil, err
	}
	if doc, ok := f.docs[dep.Endpoint]; ok {
		return doc, nil
	}
	return &metadata.Document{}, nil
}

func sampleFetcher() *fakeFetcher {
	return &fakeFetcher{
		docs: map[string]*metadata.Document{
			"https://a.example.com/v1/metadata": {Sources: []metadata.Source{
				{Name: "default", Kind: "postgres", TableCount: 5, LogicalModelCount: 2},
			}},
			"https://b.example.com/v1/metadata": {Sources: []metadata.Source{
				{Name: "docs", Kind: "mongo", TableCount: 3},
			}},
		},
		errs: map[string]error{
			"https://c.example.com/v1/metadata": errors.Wrap(errors.ErrCodeTransport,
				"metadata request failed", stderrors.New("connection refused")),
		},
	}
}

func sampleDeployments() []endpoint.Deployment {
	return []endpoint.Deployment{
		{Endpoint: "https://a.example.com/v1/metadata", Secret: "sa"},
		{Endpoint: "https://b.example.com/v1/metadata", Secret: "sb"},
		{Endpoint: "https://c.example.com/v1/metadata", Secret: "sc"},
	}
}

func TestAuditor_Run(t *testing.T) {
	var term bytes.Buffer
	a := &Auditor{Fetcher: sampleFetcher(), Terminal: &term}

	rep := a.Run(context.Background(), sampleDeployments())

	require.Len(t, rep.Results, 3)
	assert.True(t, rep.Results[0].OK())
	assert.Equal(t, 7, rep.Results[0].Summary.TotalModels)
	assert.True(t, rep.Results[1].OK())
	assert.Equal(t, 3, rep.Results[1].Summary.TotalCollections)
	assert.False(t, rep.Results[2].OK())
	assert.True(t, errors.Is(rep.Results[2].Err, errors.ErrCodeTransport))

	assert.Equal(t, 10, rep.Totals.Models)
	assert.Equal(t, 1, rep.Totals.Failed)
	assert.NotEmpty(t, a.RunID)

	assert.Equal(t,
		"Error fetching metadata for https://c.example.com/v1/metadata: [TRANSPORT] metadata request failed: connection refused\n",
		term.String())
}

func TestAuditor_Run_Empty(t *testing.T) {
	var term bytes.Buffer
	a := &Auditor{Fetcher: sampleFetcher(), Terminal: &term}

	rep := a.Run(context.Background(), nil)

	assert.Empty(t, rep.Results)
	assert.Equal(t, 0, rep.Totals.Models)
	assert.Empty(t, term.String())
}

func TestAuditor_Run_SecretNeverPrinted(t *testing.T) {
	var term bytes.Buffer
	f := &fakeFetcher{errs: map[string]error{
		"https://x.example.com/v1/metadata": stderrors.New("rejected header value hunter2"),
	}}
	a := &Auditor{Fetcher: f, Terminal: &term}

	rep := a.Run(context.Background(), []endpoint.Deployment{
		{Endpoint: "https://x.example.com/v1/metadata", Secret: "hunter2"},
	})

	require.Len(t, rep.Results, 1)
	assert.False(t, rep.Results[0].OK())
	assert.Contains(t, term.String(), "https://x.example.com/v1/metadata")
	assert.NotContains(t, term.String(), "hunter2")
}

func TestAuditor_Run_RedactedErrorKeepsCodes(t *testing.T) {
	f := &fakeFetcher{errs: map[string]error{
		"https://x.example.com/v1/metadata": errors.Wrap(errors.ErrCodeTransport, "metadata request failed",
			errors.Wrap(errors.ErrCodeTimeout, "request timed out", stderrors.New("echoed hunter2"))),
	}}
	a := &Auditor{Fetcher: f, Terminal: &bytes.Buffer{}}

	rep := a.Run(context.Background(), []endpoint.Deployment{
		{Endpoint: "https://x.example.com/v1/metadata", Secret: "hunter2"},
	})

	err := rep.Results[0].Err
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")
	assert.Equal(t, errors.ErrCodeTransport, errors.CodeOf(err))
	assert.True(t, errors.Is(err, errors.ErrCodeTimeout))
}

func TestAuditor_Run_ShapeErrorIsolated(t *testing.T) {
	var term bytes.Buffer
	f := sampleFetcher()
	f.errs["https://b.example.com/v1/metadata"] = errors.New(errors.ErrCodeShape, "duplicate source name")
	a := &Auditor{Fetcher: f, Terminal: &term}

	rep := a.Run(context.Background(), sampleDeployments())

	assert.True(t, rep.Results[0].OK())
	assert.False(t, rep.Results[1].OK())
	assert.False(t, rep.Results[2].OK())
	assert.Equal(t, 7, rep.Totals.Models)
	assert.Equal(t, 2, strings.Count(term.String(), "Error fetching metadata for"))
}

func TestAuditor_Run_SequentialByDefault(t *testing.T) {
	f := sampleFetcher()
	f.delay = 5 * time.Millisecond
	a := &Auditor{Fetcher: f, Terminal: &bytes.Buffer{}}

	a.Run(context.Background(), sampleDeployments())

	assert.Equal(t, int32(1), f.peak.Load())
	assert.Equal(t, []string{
		"https://a.example.com/v1/metadata",
		"https://b.example.com/v1/metadata",
		"https://c.example.com/v1/metadata",
	}, f.calls)
}

func TestAuditor_Run_ConcurrentKeepsOrder(t *testing.T) {
	f := sampleFetcher()
	f.delay = 20 * time.Millisecond
	a := &Auditor{Fetcher: f, Concurrency: 3, Terminal: &bytes.Buffer{}}

	deps := sampleDeployments()
	rep := a.Run(context.Background(), deps)

	require.Len(t, rep.Results, len(deps))
	for i, dep := range deps {
		assert.Equal(t, dep.Endpoint, rep.Results[i].Endpoint)
	}
	assert.LessOrEqual(t, f.peak.Load(), int32(3))
	assert.Equal(t, 10, rep.Totals.Models)
}

func TestAuditor_Run_CanceledContext(t *testing.T) {
	f := sampleFetcher()
	f.delay = time.Second
	a := &Auditor{Fetcher: f, Terminal: &bytes.Buffer{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := a.Run(ctx, sampleDeployments())

	require.Len(t, rep.Results, 3)
	assert.Equal(t, 3, rep.Totals.Failed)
}

func TestAuditor_Run_LimiterAbort(t *testing.T) {
	a := &Auditor{
		Fetcher:  sampleFetcher(),
		Limiter:  NewLimiter(0.001),
		Terminal: &bytes.Buffer{},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	rep := a.Run(ctx, sampleDeployments())

	// The first request consumes the only token.
	assert.True(t, rep.Results[0].OK())
	assert.True(t, errors.Is(rep.Results[1].Err, errors.ErrCodeTimeout))
}

func TestAuditor_Run_NoFetcher(t *testing.T) {
	a := &Auditor{Terminal: &bytes.Buffer{}}

	rep := a.Run(context.Background(), sampleDeployments()[:1])

	require.Len(t, rep.Results, 1)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(rep.Results[0].Err))
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, NewLimiter(0))
	assert.Nil(t, NewLimiter(-1))
	require.NotNil(t, NewLimiter(5))
	assert.InDelta(t, 5.0, float64(NewLimiter(5).Limit()), 0.0001)
}

func TestWriteMetrics(t *testing.T) {
	a := &Auditor{Fetcher: sampleFetcher(), Terminal: &bytes.Buffer{}}
	a.Run(context.Background(), sampleDeployments())

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"modelaudit_run_duration_seconds",
		"modelaudit_deployments_total",
		"modelaudit_metadata_fetch_duration_seconds",
		"modelaudit_models",
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}

	path := filepath.Join(t.TempDir(), "modelaudit.prom")
	require.NoError(t, WriteMetrics(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `modelaudit_models{category="total"} 10`)
	assert.Contains(t, string(content), `modelaudit_deployments_total{status="error"}`)
}

func TestWriteMetrics_BadPath(t *testing.T) {
	err := WriteMetrics(filepath.Join(t.TempDir(), "missing", "modelaudit.prom"))
	assert.Error(t, err)
}
