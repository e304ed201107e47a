// Package secret resolves token references for embedding applications.
//
// Configuration rarely carries raw credentials. A Resolver turns a
// reference like "env://GITHUB_TOKEN" or "file:///etc/apiguard/token"
// into an auth.Token at startup, so config files and flags never hold
// the secret itself. Anything without a scheme prefix is treated as a
// literal token.
//
//	resolver := secret.NewResolver()
//	token, err := resolver.Resolve(ctx, os.Getenv("TOKEN_REF"))
//
// Custom backends (a vault, a keychain) plug in via Register.
package secret
