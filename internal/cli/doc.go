// Package cli provides the interactive parsepush command line.
//
// It wires configuration, the two storage tiers, the server store, the push
// status board and the template store behind a small REPL. Typical flow:
// unlock the vault, list the configured Parse Servers, then inspect the
// _PushStatus records of one of them.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See App and runREPL for details.
package cli
