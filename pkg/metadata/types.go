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

package metadata

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/GouravHasura/scripts/pkg/errors"
)

// Document is the part of a metadata export the audit needs: the ordered
// list of connected data sources.
type Document struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// Source is one connected data source within a deployment.
type Source struct {
	// Name is unique within a deployment.
	Name string `json:"name" yaml:"name"`

	// Kind is the raw backend kind (postgres, mssql, mongo, ...).
	Kind string `json:"kind" yaml:"kind"`

	// TableCount is the number of tracked tables, or collections for
	// schemaless backends.
	TableCount int `json:"tableCount" yaml:"tableCount"`

	// LogicalModelCount is the number of logical models defined on the source.
	LogicalModelCount int `json:"logicalModelCount" yaml:"logicalModelCount"`
}

// exportResponse mirrors the export_metadata response. Only lengths of the
// tables and logical_models arrays matter, so their items stay undecoded.
type exportResponse struct {
	Metadata *struct {
		Sources []rawSource `json:"sources"`
	} `json:"metadata"`
}

type rawSource struct {
	Name          *string           `json:"name"`
	Kind          *string           `json:"kind"`
	Tables        []json.RawMessage `json:"tables"`
	LogicalModels []json.RawMessage `json:"logical_models"`
}

// Parse decodes an export_metadata response body.
//
// Invalid JSON is an ErrCodeTransport error (the body is not a metadata
// response at all). A response without a metadata object, a source without
// name or kind, or a repeated source name is an ErrCodeShape error. A
// missing sources list is an empty document.
func Parse(body []byte) (*Document, error) {
	var resp exportResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		if isTypeError(err) {
			return nil, errors.Wrap(errors.ErrCodeShape, "metadata response has unexpected field types", err)
		}
		return nil, errors.Wrap(errors.ErrCodeTransport, "malformed metadata response body", err)
	}

	if resp.Metadata == nil {
		return nil, errors.New(errors.ErrCodeShape, "metadata response has no metadata field")
	}

	doc := &Document{Sources: make([]Source, 0, len(resp.Metadata.Sources))}
	seen := make(map[string]int, len(resp.Metadata.Sources))

	for i, rs := range resp.Metadata.Sources {
		if rs.Name == nil || *rs.Name == "" {
			return nil, errors.NewWithContext(errors.ErrCodeShape,
				fmt.Sprintf("source %d has no name", i),
				map[string]any{"index": i})
		}
		if rs.Kind == nil || *rs.Kind == "" {
			return nil, errors.NewWithContext(errors.ErrCodeShape,
				fmt.Sprintf("source %q has no kind", *rs.Name),
				map[string]any{"index": i, "source": *rs.Name})
		}
		if prev, dup := seen[*rs.Name]; dup {
			return nil, errors.NewWithContext(errors.ErrCodeShape,
				fmt.Sprintf("source name %q is not unique", *rs.Name),
				map[string]any{"index": i, "first": prev, "source": *rs.Name})
		}
		seen[*rs.Name] = i

		doc.Sources = append(doc.Sources, Source{
			Name:              *rs.Name,
			Kind:              *rs.Kind,
			TableCount:        len(rs.Tables),
			LogicalModelCount: len(rs.LogicalModels),
		})
	}

	return doc, nil
}

func isTypeError(err error) bool {
	var te *json.UnmarshalTypeError
	return stderrors.As(err, &te)
}
