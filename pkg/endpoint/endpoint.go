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
	"strings"

	"github.com/GouravHasura/scripts/pkg/errors"
	"github.com/GouravHasura/scripts/pkg/logging"
	"github.com/GouravHasura/scripts/pkg/serializer"
)

// Deployment is one audited endpoint as listed in the endpoint configuration.
type Deployment struct {
	// Endpoint is the admin or GraphQL URL exactly as configured.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Secret is the admin credential sent with the metadata request.
	Secret string `json:"secret" yaml:"secret"`
}

// LogValue implements slog.LogValuer so the secret never reaches a log line.
func (d Deployment) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("endpoint", logging.Redact(d.Endpoint)),
		slog.Bool("hasSecret", d.Secret != ""),
	)
}

// String returns the redacted endpoint.
func (d Deployment) String() string {
	return logging.Redact(d.Endpoint)
}

// Load reads the endpoint list at path. JSON and YAML are supported,
// selected by extension. Any failure is returned as an ErrCodeConfig error.
func Load(path string) ([]Deployment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New(errors.ErrCodeConfig, "endpoint configuration path is empty")
	}

	deps, err := serializer.FromFile[[]Deployment](path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeConfig,
			"failed to read endpoint configuration", err,
			map[string]any{"path": path})
	}

	if err := Validate(*deps); err != nil {
		return nil, err
	}

	slog.Debug("loaded endpoint configuration",
		slog.String("path", path),
		slog.Int("deployments", len(*deps)))

	return *deps, nil
}

// Validate checks every entry has an endpoint. Entries without a secret are
// allowed; the request is then sent without the credential header.
func Validate(deps []Deployment) error {
	for i := range deps {
		deps[i].Endpoint = strings.TrimSpace(deps[i].Endpoint)
		if deps[i].Endpoint == "" {
			return errors.NewWithContext(errors.ErrCodeConfig,
				fmt.Sprintf("entry %d has no endpoint", i),
				map[string]any{"index": i})
		}
		if deps[i].Secret == "" {
			slog.Warn("deployment has no admin secret", "deployment", deps[i])
		}
	}
	return nil
}
