// Package errors provides unified error handling for duoguard.
// It implements structured error types with machine-readable codes and HTTP
// status mapping, so that an authorization denial, a missing document, and a
// malformed payload stay distinguishable all the way to the client.
package errors
