// Package errors provides the shared application error type used across the
// module. It carries a machine-readable code, a retryable flag and the HTTP
// status a service layer should answer with, and renders as an RFC 7807 style
// JSON body.
package errors
