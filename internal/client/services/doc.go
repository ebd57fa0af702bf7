// Package services contains the application services of the gophsync client.
//
// SyncService is the sync guard: it watches the session-change stream and
// pushes the normalized user record to the backend at most once per login.
// AuthService and ProfileService drive the API client on behalf of the CLI
// and keep the state store current, tracking loading and error state the
// same way for every call.
package services
