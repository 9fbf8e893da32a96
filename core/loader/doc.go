// Package loader sequences the loading of a bundle's directories into a
// running host.
//
// A bundle is a directory tree with up to seven category directories:
// config, policies, models, controllers, helpers, services and responses.
// The loader does not read those directories itself. Each category is
// handed to a delegate from a LoaderSet, which registers the contents with
// the host.
//
// # Enabling
//
// The bundle name is derived from its base directory (see BundleName) and
// looked up in the host's hook metadata. When the hook declares a config
// key whose config object carries an "enable" field, that value decides
// whether anything is loaded. Every other case loads.
//
// # Ordering
//
// When enabled, policies and then config are applied synchronously. A
// failure there aborts the call and is returned directly. The async
// categories then run concurrently; the completion callback fires once,
// after all of them settle, with nil or the first error observed. A failing
// category does not cancel the others, and categories that succeeded are
// not rolled back.
//
// # Call forms
//
//	l.Inject(ctx, loader.NoArgs())
//	l.Inject(ctx, loader.CallbackOnly(cb))
//	l.Inject(ctx, loader.WithDirs(dirs, cb))
//	l.Inject(ctx, loader.Inverted(cb, dirs)) // legacy order
//
// # Manager
//
// Manager loads several bundles into the same host: every bundle is
// configured first, then injected.
package loader
