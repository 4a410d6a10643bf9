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

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/GouravHasura/scripts/pkg/audit"
	"github.com/GouravHasura/scripts/pkg/defaults"
	"github.com/GouravHasura/scripts/pkg/endpoint"
	"github.com/GouravHasura/scripts/pkg/errors"
	"github.com/GouravHasura/scripts/pkg/header"
	"github.com/GouravHasura/scripts/pkg/logging"
	"github.com/GouravHasura/scripts/pkg/metadata"
	"github.com/GouravHasura/scripts/pkg/report"
	"github.com/GouravHasura/scripts/pkg/serializer"
)

// reportSink receives the report. Close flushes it to its destination.
type reportSink interface {
	report.FormatSerializer
	Close() error
}

// openReport is replaced in tests.
var openReport = func(format serializer.Format, path string) (reportSink, error) {
	return serializer.NewFileWriterOrStdout(format, path)
}

func auditCmd() *cli.Command {
	return &cli.Command{
		Name:                  "audit",
		EnableShellCompletion: true,
		Usage:                 "Count the models tracked by every configured deployment",
		Description: `Reads the endpoint list, fetches the exported metadata of each deployment
and writes a model inventory report.

A deployment that cannot be reached or returns an unexpected document is
reported with Error cells and excluded from the totals; the remaining
deployments are still audited.

# Endpoint list

A JSON (or YAML, by extension) array of objects:

  [{"endpoint": "https://my-app.hasura.app/v1/graphql", "secret": "..."}]

Endpoints ending in /graphql are rewritten to /metadata.

# Examples

Per-deployment CSV report:
  modelaudit audit --config endpoints.json --output metadata_summary.csv

Per-source breakdown:
  modelaudit audit --shape source --output sources.csv

Quick look in the terminal:
  modelaudit audit --format table --output -`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "endpoint list file (JSON or YAML)",
				Value:   defaults.ConfigFile,
				Sources: cli.EnvVars(envPrefix + "CONFIG"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "report file path (\"-\" for stdout)",
				Value:   defaults.OutputFile,
				Sources: cli.EnvVars(envPrefix + "OUTPUT"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   fmt.Sprintf("report format (%s), derived from --output when not set", strings.Join(serializer.SupportedFormats(), ", ")),
				Sources: cli.EnvVars(envPrefix + "FORMAT"),
			},
			&cli.StringFlag{
				Name:    "shape",
				Usage:   fmt.Sprintf("report rows (%s)", strings.Join(report.SupportedShapes(), ", ")),
				Value:   string(report.ShapeDeployment),
				Sources: cli.EnvVars(envPrefix + "SHAPE"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "timeout for one metadata request",
				Value:   defaults.HTTPClientTimeout,
				Sources: cli.EnvVars(envPrefix + "TIMEOUT"),
			},
			&cli.StringFlag{
				Name:    "secret-header",
				Usage:   "request header carrying the deployment secret",
				Value:   defaults.AdminSecretHeader,
				Sources: cli.EnvVars(envPrefix + "SECRET_HEADER"),
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Usage:   fmt.Sprintf("deployments audited at once (1-%d)", defaults.MaxConcurrency),
				Value:   defaults.Concurrency,
				Sources: cli.EnvVars(envPrefix + "CONCURRENCY"),
			},
			&cli.FloatFlag{
				Name:    "rate-limit",
				Usage:   "metadata requests per second across all deployments (0 = unlimited)",
				Sources: cli.EnvVars(envPrefix + "RATE_LIMIT"),
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "write Prometheus metrics to this textfile after the run",
				Sources: cli.EnvVars(envPrefix + "METRICS_FILE"),
			},
			&cli.BoolFlag{
				Name:    "insecure-skip-verify",
				Usage:   "skip TLS certificate verification",
				Sources: cli.EnvVars(envPrefix + "INSECURE_SKIP_VERIFY"),
			},
		},
		Action: runAudit,
	}
}

func runAudit(ctx context.Context, cmd *cli.Command) error {
	shape, err := report.ParseShape(cmd.String("shape"))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid --shape", err)
	}

	output := cmd.String("output")
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	concurrency := cmd.Int("concurrency")
	if concurrency < 1 || concurrency > defaults.MaxConcurrency {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("--concurrency must be between 1 and %d, got %d", defaults.MaxConcurrency, concurrency))
	}
	rateLimit := cmd.Float("rate-limit")
	if rateLimit < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "--rate-limit must not be negative")
	}

	// The endpoint list is validated before any request is made.
	deps, err := endpoint.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	w, err := openReport(outFormat, output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfig, "failed to open report output", err)
	}
	// Covers early returns; the report is closed explicitly once written.
	defer func() { _ = w.Close() }()

	term := terminal(cmd)
	runID := uuid.NewString()

	h := header.New(
		header.WithMetadata(header.MetadataRunID, runID),
		header.WithMetadata(header.MetadataShape, string(shape)),
	)
	h.Init(header.KindModelInventory, header.APIVersion, version)

	client := metadata.NewClient(
		metadata.WithSecretHeader(cmd.String("secret-header")),
		metadata.WithTimeout(cmd.Duration("timeout")),
		metadata.WithUserAgent(fmt.Sprintf("%s/%s", name, version)),
		metadata.WithInsecureSkipVerify(cmd.Bool("insecure-skip-verify")),
	)

	auditor := &audit.Auditor{
		Fetcher:     client,
		Concurrency: concurrency,
		Limiter:     audit.NewLimiter(rateLimit),
		Terminal:    term,
		RunID:       runID,
	}
	rep := auditor.Run(ctx, deps)

	rw := &report.Writer{
		Shape:      shape,
		Serializer: w,
		Header:     h,
		Terminal:   term,
	}
	if err := rw.Write(ctx, rep); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to write report", err)
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to close report output", err)
	}

	if failed := rep.Failures(); len(failed) > 0 {
		endpoints := make([]string, 0, len(failed))
		for _, f := range failed {
			endpoints = append(endpoints, logging.Redact(f.Endpoint))
		}
		slog.Warn("some deployments could not be audited",
			slog.String("run_id", runID),
			slog.Int("failed", len(failed)),
			slog.Any("endpoints", endpoints))
	}

	if output != "" && output != serializer.StdoutPath {
		fmt.Fprintf(term, "Summary written to %s\n", output)
	}

	if path := cmd.String("metrics-file"); path != "" {
		if err := audit.WriteMetrics(path); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "failed to export metrics", err)
		}
	}

	return nil
}

// parseOutputFormat returns --format when set, otherwise the format implied
// by the --output extension. CSV is used for stdout and unknown extensions.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	if f := cmd.String("format"); f != "" {
		outFormat := serializer.Format(strings.ToLower(f))
		if outFormat.IsUnknown() {
			return "", errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("unknown output format %q, supported values: %v", f, serializer.SupportedFormats()))
		}
		return outFormat, nil
	}

	output := strings.ToLower(cmd.String("output"))
	for _, ext := range []string{".json", ".yaml", ".yml", ".table", ".txt"} {
		if strings.HasSuffix(output, ext) {
			return serializer.FormatFromPath(output), nil
		}
	}
	return serializer.FormatCSV, nil
}

func terminal(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}
