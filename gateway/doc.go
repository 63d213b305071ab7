// Package gateway is the data access gateway: the single enforcement point
// between callers and the document store.
//
// Every operation resolves the path to a resource pattern, fetches the
// existing document state the rules depend on, asks the policy evaluator
// for a decision, and only then touches the store. A deny is terminal and
// non-retryable; an allow performs the underlying operation exactly once.
//
// The Elevated handle bypasses the evaluator for provisioning and test
// fixtures. It is a separate type that the request path never constructs,
// and every call through it lands in the audit trail.
package gateway
