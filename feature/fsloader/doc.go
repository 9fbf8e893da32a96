// Package fsloader provides bundle delegates that read category directories
// from a filesystem.
//
// Every visible regular file under a category directory is registered with
// the host under its path relative to the directory, minus the extension:
// api/controllers/admin/UserController.js becomes "admin/UserController" in
// the controllers registry. Hidden files and directories are skipped, and a
// category whose directory does not exist registers nothing.
//
// Config directories are different: each YAML, JSON or TOML file is decoded
// with viper and its top-level objects are merged into the host config store,
// which is how a bundle ships its own "enable" defaults.
//
// The filesystem is an afero.Fs, so tests run against afero.NewMemMapFs().
package fsloader
