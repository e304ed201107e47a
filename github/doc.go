// Package github provides the typed API operations the resilience layer
// fronts: listing the authenticated user's repositories, looking up the
// account behind a token, and creating repositories.
//
// Every operation goes through the client package, so admission control,
// circuit breaking, retry, and error classification apply uniformly.
// Callers never see buckets or breakers, only results and
// *apierror.Error values.
package github
