// Package cli provides the interactive gophsession command-line client.
//
// It wires configuration, the durable store, the cookie jar, the account
// service client and the session gate into a REPL. Typical flow: restore
// the session from storage, prompt for credentials when there is none,
// start a background connectivity watcher, and execute user commands.
//
// Commands that need a session are wrapped with Gate.Guard; without one the
// gate redirects to the login prompt and the command body never runs.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
