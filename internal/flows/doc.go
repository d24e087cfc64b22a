// Package flows holds the pure decision logic of the authentication engine.
//
// Each Run* function implements one engine operation against a typed Deps
// struct of function fields. The root package wires those fields once at
// Build time; flows never import Redis, the credential store, or any other
// collaborator directly. That keeps the login state machine testable with
// plain closures and keeps storage concerns out of the decision code.
//
// Flow functions report degraded-store conditions through the Degraded
// callback and continue with the documented fail-open value instead of
// surfacing the outage to login callers.
package flows
