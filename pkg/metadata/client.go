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
	"bytes"
	"context"
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GouravHasura/scripts/pkg/defaults"
	"github.com/GouravHasura/scripts/pkg/endpoint"
	"github.com/GouravHasura/scripts/pkg/errors"
	"github.com/GouravHasura/scripts/pkg/logging"
)

const (
	// UserAgent is sent on every metadata request.
	UserAgent = "modelaudit/1.0"

	queryPathSuffix    = "/graphql"
	maxRedirects       = 10
	metadataPathSuffix = "/metadata"
)

// exportRequestBody asks for a full metadata export.
var exportRequestBody = []byte(`{"type":"export_metadata","version":2,"args":{}}`)

// Fetcher retrieves the metadata document of one deployment.
type Fetcher interface {
	Fetch(ctx context.Context, dep endpoint.Deployment) (*Document, error)
}

// Option defines a configuration option for Client.
type Option func(*Client)

// Client posts export_metadata requests to deployment admin endpoints.
type Client struct {
	SecretHeader string
	UserAgent    string
	MaxBytes     int64
	Client       *http.Client
}

// WithSecretHeader sets the header that carries the admin secret.
func WithSecretHeader(name string) Option {
	return func(c *Client) {
		c.SecretHeader = name
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.UserAgent = userAgent
	}
}

// WithTimeout sets the total timeout for one request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.Client.Timeout = timeout
		}
	}
}

// WithMaxBytes caps the response body size.
func WithMaxBytes(n int64) Option {
	return func(c *Client) {
		c.MaxBytes = n
	}
}

// WithInsecureSkipVerify disables TLS verification on the default transport.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *Client) {
		if tr, ok := c.Client.Transport.(*http.Transport); ok && tr.TLSClientConfig != nil {
			tr.TLSClientConfig.InsecureSkipVerify = skip
		}
	}
}

// NewClient creates a Client with tuned transport defaults.
func NewClient(options ...Option) *Client {
	c := &Client{
		SecretHeader: defaults.AdminSecretHeader,
		UserAgent:    UserAgent,
		MaxBytes:     defaults.MetadataMaxBytes,
		Client: &http.Client{
			Timeout:       defaults.HTTPClientTimeout,
			Transport:     newDefaultHTTPTransport(),
			CheckRedirect: sameOriginRedirect,
		},
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// sameOriginRedirect follows redirects only within the scheme and host of the
// first request. Custom headers, the secret header included, are forwarded on
// every redirect.
func sameOriginRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	orig := via[0].URL
	if req.URL.Scheme != orig.Scheme || req.URL.Host != orig.Host {
		return fmt.Errorf("refusing redirect from %s://%s to %s://%s",
			orig.Scheme, orig.Host, req.URL.Scheme, req.URL.Host)
	}
	return nil
}

func newDefaultHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		MaxIdleConnsPerHost:   2,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// ResolveEndpoint maps a configured URL onto its metadata endpoint. A path
// ending in /graphql is rewritten to end in /metadata, anything else is used
// unchanged.
func ResolveEndpoint(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid endpoint url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("endpoint url has no host")
	}

	if strings.HasSuffix(u.Path, queryPathSuffix) {
		u.Path = strings.TrimSuffix(u.Path, queryPathSuffix) + metadataPathSuffix
		u.RawPath = ""
	}
	return u.String(), nil
}

// Fetch issues one export_metadata request for dep and parses the response.
// Any failure is an ErrCodeTransport or ErrCodeShape error naming the endpoint.
func (c *Client) Fetch(ctx context.Context, dep endpoint.Deployment) (*Document, error) {
	errCtx := map[string]any{"endpoint": logging.Redact(dep.Endpoint)}

	target, err := ResolveEndpoint(dep.Endpoint)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "cannot resolve metadata endpoint", err, errCtx)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(exportRequestBody))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "failed to create metadata request", err, errCtx)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if dep.Secret != "" && c.SecretHeader != "" {
		req.Header.Set(c.SecretHeader, dep.Secret)
	}

	slog.Debug("requesting metadata export", slog.String("url", logging.Redact(target)))

	resp, err := c.Client.Do(req)
	if err != nil {
		if isTimeout(err) {
			err = errors.Wrap(errors.ErrCodeTimeout, "request timed out", err)
		}
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "metadata request failed", err, errCtx)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		errCtx["status"] = resp.StatusCode
		return nil, errors.NewWithContext(errors.ErrCodeTransport,
			fmt.Sprintf("metadata request returned %s", resp.Status), errCtx)
	}

	limit := c.MaxBytes
	if limit <= 0 {
		limit = defaults.MetadataMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "failed to read metadata response", err, errCtx)
	}
	if int64(len(body)) > limit {
		return nil, errors.NewWithContext(errors.ErrCodeTransport,
			fmt.Sprintf("metadata response exceeds %d bytes", limit), errCtx)
	}

	doc, err := Parse(body)
	if err != nil {
		var se *errors.StructuredError
		if stderrors.As(err, &se) {
			if se.Context == nil {
				se.Context = map[string]any{}
			}
			for k, v := range errCtx {
				se.Context[k] = v
			}
		}
		return nil, err
	}

	slog.Debug("received metadata export",
		slog.String("url", logging.Redact(target)),
		slog.Int("sources", len(doc.Sources)),
		slog.Int("bytes", len(body)))

	return doc, nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
