// Package server exposes the document API over HTTP.
//
// All document access goes through /v1/docs/*path and is mediated by the
// gateway; the server layer resolves the caller's identity, shapes requests
// and responses, and maps application errors onto HTTP status codes. It
// holds no policy logic of its own.
package server
