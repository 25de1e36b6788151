// Package middleware provides net/http integration for authcore: a bearer
// guard that verifies the presented token and evaluates the engine's route
// policy before the wrapped handler runs. Every request is re-verified
// independently; there is no session state.
package middleware
