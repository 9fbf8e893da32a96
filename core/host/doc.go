// Package host provides an in-memory application host for bundles.
//
// The host holds three kinds of state:
//   - Hook metadata: which config key belongs to which bundle name.
//   - A config store: settings objects keyed by config key. The "enable"
//     field of a bundle's settings decides whether the loader loads it.
//   - Registries: one name -> source table per category, filled by the
//     delegates in feature/fsloader and feature/objectstore.
//
// All methods are safe for concurrent use, since the async categories of a
// bundle register into the host in parallel.
package host
