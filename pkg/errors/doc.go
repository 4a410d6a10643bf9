// Package errors provides structured error types for better observability
// and programmatic error handling across the audit pipeline.
//
// Three codes drive run behavior:
//
//   - ErrCodeConfig: the endpoint list cannot be read. Fatal, the run stops
//     before any request is sent.
//   - ErrCodeTransport: one deployment could not be reached or answered with
//     a non-2xx status. Recovered per deployment.
//   - ErrCodeShape: one deployment answered with a document missing fields the
//     aggregation needs. Recovered per deployment, like transport failures.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTransport,
//	    "metadata request failed",
//	    cause,
//	    map[string]any{
//	        "endpoint": url,
//	    },
//	)
package errors
