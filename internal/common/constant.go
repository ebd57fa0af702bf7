// Package common contains small helpers and constants shared by client
// packages: random byte generation, secret wiping and header names.
package common

// RequestIDHeaderName is the HTTP header carrying the per-call correlation id
// on outbound API requests.
const RequestIDHeaderName = "X-Request-ID"
