// Package policy is the authorization core of duoguard.
//
// It has two halves. The path matcher maps a document path onto one of a
// fixed set of resource patterns, capturing the path parameters the rules
// need. The evaluator takes (identity, matched ref, operation, existing
// document, incoming document, list filters) and returns an allow/deny
// decision with a machine-readable reason.
//
// The evaluator is a pure function over its inputs and the read-only state
// snapshot it is given: stateless, reentrant, and deterministic — an
// identical request against unchanged state always yields the identical
// decision. Everything unmatched or unprovable denies (fail-closed), and a
// single false sub-condition denies the whole operation.
package policy
