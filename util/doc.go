// Package util holds small generic helpers: pointers for optional request
// fields, order-preserving de-duplication, size parsing for config values and
// secret masking for logs.
package util
