// Package auth handles the caller-supplied bearer credential at the
// client boundary: attaching it to requests, redacting it for logs, and
// deriving the opaque identity that keys rate budgets and circuit
// state.
//
// Token acquisition, refresh, and storage are the embedding
// application's concern and deliberately absent here.
package auth
