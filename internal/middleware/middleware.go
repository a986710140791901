// Package middleware stores global middleware and the global error
// handler.
//
// These intercept requests to handle cross-cutting concerns
// such as request IDs, request logging, metrics, CORS,
// tracing and panic recovery
package middleware
