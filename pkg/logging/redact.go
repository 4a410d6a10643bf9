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

package logging

import (
	"regexp"
	"strings"
)

// RedactedText replaces sensitive values in log output.
const RedactedText = "[REDACTED]"

var (
	// userinfo in URLs (user@host, user:pass@host)
	userInfoPattern = regexp.MustCompile(`://[^/\s@]+@`)

	// secret-bearing query or header style pairs
	secretPairPattern = regexp.MustCompile(`(?i)(admin[_-]?secret|secret|password|token|api[_-]?key)([=:]\s*)[^&\s,;"]+`)
)

// Redact removes credentials that may be embedded in a URL.
func Redact(raw string) string {
	if raw == "" {
		return ""
	}
	s := userInfoPattern.ReplaceAllString(raw, "://"+RedactedText+"@")
	return secretPairPattern.ReplaceAllString(s, "${1}${2}"+RedactedText)
}

// SanitizeError returns the error text with credentials removed.
// Literal secrets known to the caller are removed as well.
func SanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error(), secrets...)
}

// SanitizeString scrubs s with the generic patterns and removes every
// non-empty literal secret.
func SanitizeString(s string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, RedactedText)
	}
	return Redact(s)
}

// RedactError returns err with the same chain but credentials removed from
// its message, so errors.Is and errors.As keep working on the result.
func RedactError(err error, secrets ...string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	clean := SanitizeString(msg, secrets...)
	if clean == msg {
		return err
	}
	return &redactedError{msg: clean, err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
