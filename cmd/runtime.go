package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"mvcs-loader/core/config"
	"mvcs-loader/core/host"
	"mvcs-loader/core/loader"
	"mvcs-loader/core/storage"
	"mvcs-loader/feature/fsloader"
	"mvcs-loader/feature/objectstore"

	"go.uber.org/zap"
)

// runtime is a host plus the delegate set bundles are loaded with.
type runtime struct {
	cfg     *config.Config
	host    *host.Host
	loaders loader.LoaderSet
	logger  *zap.Logger
}

func newRuntime(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*runtime, error) {
	if !cfg.Loader.IsValidSource() {
		return nil, fmt.Errorf("unknown loader source %q", cfg.Loader.Source)
	}

	h := host.FromConfig(cfg.Host)
	rt := &runtime{cfg: cfg, host: h, logger: logg}

	switch cfg.Loader.Source {
	case loader.SourceS3:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		d := objectstore.New(client, cfg.Storage.Bucket, h, logg)
		if err := d.Check(ctx); err != nil {
			return nil, err
		}
		rt.loaders = d.LoaderSet()
	default:
		rt.loaders = fsloader.New(nil, h, logg).LoaderSet()
	}
	return rt, nil
}

// loader creates a loader for one bundle directory.
func (rt *runtime) loader(bundleDir string) (*loader.Loader, error) {
	if rt.cfg.Loader.Source == loader.SourceFS {
		abs, err := filepath.Abs(bundleDir)
		if err != nil {
			return nil, err
		}
		bundleDir = abs
	}
	return loader.New(rt.host, rt.loaders, loader.Options{
		BundleDir:   bundleDir,
		WorkingRoot: rt.cfg.Loader.WorkingRoot,
		Logger:      rt.logger,
		Timeout:     rt.cfg.Loader.Timeout(),
	}), nil
}

// parseDirs splits category=path overrides into the configure and inject
// maps. A nil map means the defaults apply.
func parseDirs(pairs map[string]string) (configure, inject loader.DirectoryMap, err error) {
	for name, dir := range pairs {
		c := loader.Category(strings.ToLower(strings.TrimSpace(name)))
		if !c.IsValid() {
			return nil, nil, fmt.Errorf("unknown category %q", name)
		}
		if c == loader.CategoryConfig || c == loader.CategoryPolicies {
			if configure == nil {
				configure = loader.DirectoryMap{}
			}
			configure[c] = dir
			continue
		}
		if inject == nil {
			inject = loader.DirectoryMap{}
		}
		inject[c] = dir
	}
	return configure, inject, nil
}
