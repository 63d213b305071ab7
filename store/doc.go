// Package store is the document store behind the data access gateway: a
// path-keyed JSON document table on an embedded sqlite database, plus the
// audit log written by the privileged interface.
//
// The store knows nothing about authorization. Every caller on the request
// path reaches it through the gateway, which evaluates the policy first.
package store
