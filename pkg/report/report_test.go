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
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/GouravHasura/scripts/pkg/header"
	"github.com/GouravHasura/scripts/pkg/inventory"
	"github.com/GouravHasura/scripts/pkg/metadata"
	"github.com/GouravHasura/scripts/pkg/model"
	"github.com/GouravHasura/scripts/pkg/serializer"
)

func summary(t *testing.T, endpoint string, sources ...metadata.Source) inventory.Result {
	t.Helper()
	s, err := inventory.Aggregate(endpoint, model.Classify(&metadata.Document{Sources: sources}))
	require.NoError(t, err)
	return inventory.Succeeded(s)
}

func sampleReport(t *testing.T) *inventory.Report {
	return inventory.NewReport([]inventory.Result{
		summary(t, "A", metadata.Source{Name: "default", Kind: "postgres", TableCount: 5, LogicalModelCount: 2}),
		summary(t, "B", metadata.Source{Name: "docs", Kind: "mongo", TableCount: 3}),
		inventory.Failed("C", stderrors.New("connection refused")),
	})
}

func writeCSV(t *testing.T, rep *inventory.Report, shape Shape) ([][]string, string) {
	t.Helper()
	var buf, term bytes.Buffer
	w := &Writer{
		Shape:      shape,
		Serializer: serializer.NewWriter(serializer.FormatCSV, &buf),
		Terminal:   &term,
	}
	require.NoError(t, w.Write(context.Background(), rep))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	return records, term.String()
}

func TestWrite_DeploymentShape(t *testing.T) {
	records, term := writeCSV(t, sampleReport(t), ShapeDeployment)

	assert.Equal(t, [][]string{
		{"Endpoint", "TotalTablesAndViews", "TotalCollections", "TotalLogicalModels", "TotalModels"},
		{"A", "5", "0", "2", "7"},
		{"B", "0", "3", "0", "3"},
		{"C", "Error", "Error", "Error", "Error"},
		{"Total", "5", "3", "2", "10"},
	}, records)
	assert.Equal(t, "Total Models: 10\n", term)
}

func TestWrite_SourceShape(t *testing.T) {
	rep := inventory.NewReport([]inventory.Result{
		summary(t, "A",
			metadata.Source{Name: "pg", Kind: "postgres", TableCount: 5, LogicalModelCount: 2},
			metadata.Source{Name: "docs", Kind: "mongo", TableCount: 4},
		),
		summary(t, "B"),
		inventory.Failed("C", stderrors.New("boom")),
	})

	records, term := writeCSV(t, rep, ShapeSource)

	assert.Equal(t, [][]string{
		{"Endpoint", "Source", "TotalTablesAndViews", "TotalCollections", "TotalLogicalModels", "TotalProjectModels"},
		{"A", "pg", "5", "0", "2", "11"},
		{"A", "docs", "0", "4", "0", "11"},
		{"B", "", "0", "0", "0", "0"},
		{"C", "Error", "Error", "Error", "Error", "Error"},
		{"Total", "All", "5", "4", "2", "11"},
	}, records)
	assert.Equal(t, "Total Models: 11\n", term)
}

func TestWrite_EmptyReport(t *testing.T) {
	records, term := writeCSV(t, inventory.NewReport(nil), ShapeDeployment)

	require.Len(t, records, 2)
	assert.Equal(t, []string{"Total", "0", "0", "0", "0"}, records[1])
	assert.Equal(t, "Total Models: 0\n", term)
}

func TestWrite_TotalsMatchColumnSums(t *testing.T) {
	for _, shape := range []Shape{ShapeDeployment, ShapeSource} {
		t.Run(string(shape), func(t *testing.T) {
			records, _ := writeCSV(t, sampleReport(t), shape)
			data, total := records[1:len(records)-1], records[len(records)-1]

			first := 1
			if shape == ShapeSource {
				first = 2
			}
			// The last column of the source shape repeats per row, skip it.
			last := len(total)
			if shape == ShapeSource {
				last--
			}
			for col := first; col < last; col++ {
				sum := 0
				for _, row := range data {
					if row[col] == ErrorCell {
						continue
					}
					n, err := strconv.Atoi(row[col])
					require.NoError(t, err)
					sum += n
				}
				assert.Equal(t, strconv.Itoa(sum), total[col], "column %s", records[0][col])
			}
		})
	}
}

func TestWrite_Table(t *testing.T) {
	var buf, term bytes.Buffer
	w := &Writer{
		Shape:      ShapeDeployment,
		Serializer: serializer.NewWriter(serializer.FormatTable, &buf),
		Terminal:   &term,
	}
	require.NoError(t, w.Write(context.Background(), sampleReport(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[4], "Total"))
}

func TestWrite_StructuredFormats(t *testing.T) {
	h := header.New(header.WithMetadata(header.MetadataRunID, "run-1"))
	h.Init(header.KindModelInventory, header.APIVersion, "v0.1.0")

	for _, f := range []serializer.Format{serializer.FormatJSON, serializer.FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf, term bytes.Buffer
			w := &Writer{
				Shape:      ShapeSource,
				Serializer: serializer.NewWriter(f, &buf),
				Header:     h,
				Terminal:   &term,
			}
			require.NoError(t, w.Write(context.Background(), sampleReport(t)))

			var doc Document
			if f == serializer.FormatJSON {
				require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
			} else {
				require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
			}

			assert.Equal(t, header.KindModelInventory, doc.Kind)
			assert.Equal(t, "run-1", doc.Metadata[header.MetadataRunID])
			require.Len(t, doc.Deployments, 3)
			assert.Equal(t, StatusOK, doc.Deployments[0].Status)
			assert.Equal(t, 7, doc.Deployments[0].Summary.TotalModels)
			assert.Equal(t, StatusError, doc.Deployments[2].Status)
			assert.Contains(t, doc.Deployments[2].Error, "connection refused")
			assert.Nil(t, doc.Deployments[2].Summary)
			assert.Equal(t, 10, doc.Totals.Models)
			assert.Equal(t, 1, doc.Totals.Failed)
			assert.Equal(t, "Total Models: 10\n", term.String())
		})
	}
}

func TestWrite_NoSerializer(t *testing.T) {
	w := &Writer{Shape: ShapeDeployment}
	assert.Error(t, w.Write(context.Background(), sampleReport(t)))
}

func TestWrite_SerializerErrorSkipsTotalLine(t *testing.T) {
	var buf, term bytes.Buffer
	w := &Writer{
		Shape:      ShapeDeployment,
		Serializer: serializer.NewWriter(serializer.FormatCSV, &buf),
		Terminal:   &term,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, w.Write(ctx, sampleReport(t)))
	assert.Empty(t, term.String())
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape("deployment")
	require.NoError(t, err)
	assert.Equal(t, ShapeDeployment, s)

	s, err = ParseShape("source")
	require.NoError(t, err)
	assert.Equal(t, ShapeSource, s)

	_, err = ParseShape("Source")
	assert.Error(t, err)
	_, err = ParseShape("")
	assert.Error(t, err)
}
