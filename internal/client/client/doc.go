// Package client contains the backend API client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Login,
//     Register, Logout, GetProfile, UpdateProfile, SyncUser, GetUsers and
//     GetUserByID.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that reads the bearer
//     token from a SessionProvider on every call, tags each call with an
//     X-Request-ID, and maps failures to sentinel errors.
//
// # Error Handling
//
// Non-2xx responses come back as *APIError, whose message carries the
// response status text. Callers match status classes with errors.Is against
// ErrUnauthorized (401/403), ErrNotFound (404) and ErrUnavailable (5xx and
// transport failures). Nothing is retried.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation; WithTimeout adds a per-call bound.
package client
