// Package middleware contains HTTP middleware for the status server.
//
// # Components
//
//   - Auth: Implements API key validation to protect the /bundles endpoints.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
package middleware
