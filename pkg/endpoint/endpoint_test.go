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

package endpoint

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GouravHasura/scripts/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "endpoints.json", `[
  {"endpoint": "https://a.example.com/v1/graphql", "secret": "s1"},
  {"endpoint": " https://b.example.com/v1/metadata ", "secret": "s2"}
]`)

	deps, err := Load(path)
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "https://a.example.com/v1/graphql", deps[0].Endpoint)
	assert.Equal(t, "s1", deps[0].Secret)
	assert.Equal(t, "https://b.example.com/v1/metadata", deps[1].Endpoint)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "endpoints.yaml", "- endpoint: https://a.example.com/v1/graphql\n  secret: s1\n")

	deps, err := Load(path)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "s1", deps[0].Secret)
}

func TestLoad_EmptyList(t *testing.T) {
	path := writeFile(t, "endpoints.json", "[]")

	deps, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestLoad_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{name: "empty path", path: func(*testing.T) string { return " " }},
		{name: "missing file", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "endpoints.json") }},
		{name: "malformed json", path: func(t *testing.T) string { return writeFile(t, "endpoints.json", `[{"endpoint":`) }},
		{name: "wrong shape", path: func(t *testing.T) string { return writeFile(t, "endpoints.json", `{"endpoint":"x"}`) }},
		{name: "missing endpoint", path: func(t *testing.T) string { return writeFile(t, "endpoints.json", `[{"secret":"s"}]`) }},
		{name: "csv not readable", path: func(t *testing.T) string { return writeFile(t, "endpoints.csv", "endpoint,secret\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeConfig), "expected config error, got %v", err)
		})
	}
}

func TestDeployment_NeverLogsSecret(t *testing.T) {
	d := Deployment{Endpoint: "https://a.example.com/v1/graphql", Secret: "top-secret"}

	var sb strings.Builder
	logger := slog.New(slog.NewTextHandler(&sb, nil))
	logger.Info("auditing", "deployment", d)

	out := sb.String()
	assert.NotContains(t, out, "top-secret")
	assert.Contains(t, out, "a.example.com")
	assert.NotContains(t, fmt.Sprintf("%v", d), "top-secret")
}
