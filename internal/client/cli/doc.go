// Package cli provides the interactive gophsync command-line client.
//
// It wires configuration, encrypted local persistence, the session stream,
// the sync guard and the API services, then runs a REPL until the user
// exits. Background workers (the persistence writer and the sync guard loop)
// run in an errgroup next to the REPL and stop with it.
//
// Commands:
//   - register, login, logout
//   - profile, update-profile
//   - users, user <id>
//   - status (session, token expiry and last sync)
//   - reset (logout and wipe persisted state)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
