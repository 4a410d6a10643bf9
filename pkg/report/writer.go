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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/GouravHasura/scripts/pkg/header"
	"github.com/GouravHasura/scripts/pkg/inventory"
	"github.com/GouravHasura/scripts/pkg/serializer"
)

// FormatSerializer is a serializer that knows its output format.
// *serializer.Writer implements it.
type FormatSerializer interface {
	serializer.Serializer
	Format() serializer.Format
}

// Writer serializes a report and announces the audited total.
type Writer struct {
	// Shape is the row layout for CSV and table output.
	Shape Shape

	// Serializer receives the report.
	Serializer FormatSerializer

	// Header is stamped on JSON and YAML output. May be nil.
	Header *header.Header

	// Terminal receives the total line. Defaults to os.Stdout.
	Terminal io.Writer
}

// Write serializes rep and then prints the total number of models audited.
// Numbers are taken from rep as is.
func (w *Writer) Write(ctx context.Context, rep *inventory.Report) error {
	if w.Serializer == nil {
		return fmt.Errorf("report writer has no serializer")
	}
	if rep == nil {
		rep = inventory.NewReport(nil)
	}

	var data any
	if w.Serializer.Format().IsTabular() {
		data = NewTable(rep, w.Shape)
	} else {
		data = NewDocument(rep, w.Header)
	}

	if err := w.Serializer.Serialize(ctx, data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	slog.Debug("report written",
		slog.String("shape", string(w.Shape)),
		slog.String("format", string(w.Serializer.Format())),
		slog.Int("deployments", rep.Totals.Deployments),
		slog.Int("failed", rep.Totals.Failed))

	out := w.Terminal
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "Total Models: %d\n", rep.Totals.Models)
	return nil
}
