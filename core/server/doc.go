// Package server exposes the state of a host over HTTP.
//
// It is a read-only status API meant for operators: it reports which bundles
// were loaded and what each category registry contains. Loading itself never
// goes through this package.
//
// # Endpoints
//
//   - GET /health : liveness, not protected.
//   - GET /bundles : bundle names plus a host snapshot (hooks, config keys, registries).
//   - GET /bundles/:category : the names registered for one category.
//
// The /bundles routes are protected by the API key middleware when server.api_key is set.
package server
