package fsloader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mvcs-loader/core/loader"
	"mvcs-loader/core/utils"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Registry is where the delegates put what they find.
type Registry interface {
	Register(c loader.Category, name, source string)
	MergeConfig(settings map[string]any)
}

// configExtensions are the config file types viper can decode.
var configExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
	".toml": true,
}

// Delegates loads bundle directories from a filesystem.
type Delegates struct {
	fs     afero.Fs
	reg    Registry
	logger *zap.Logger
}

// New creates filesystem delegates. A nil fs uses the OS filesystem.
func New(fsys afero.Fs, reg Registry, logger *zap.Logger) *Delegates {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Delegates{fs: fsys, reg: reg, logger: logger}
}

// LoaderSet returns one delegate per category.
func (d *Delegates) LoaderSet() loader.LoaderSet {
	return loader.LoaderSet{
		Policies:    d.LoadPolicies,
		Config:      d.LoadConfig,
		Models:      d.registrar(loader.CategoryModels),
		Controllers: d.registrar(loader.CategoryControllers),
		Helpers:     d.registrar(loader.CategoryHelpers),
		Services:    d.registrar(loader.CategoryServices),
		Responses:   d.registrar(loader.CategoryResponses),
	}
}

// LoadPolicies registers every policy file found under dir.
func (d *Delegates) LoadPolicies(dir string) error {
	_, err := d.registerDir(context.Background(), loader.CategoryPolicies, dir)
	return err
}

// LoadConfig decodes every config file under dir and merges it into the
// registry's config store, in lexical path order.
func (d *Delegates) LoadConfig(dir string) error {
	files, err := d.walk(context.Background(), dir)
	if err != nil {
		return err
	}
	for _, rel := range files {
		if !configExtensions[strings.ToLower(filepath.Ext(rel))] {
			continue
		}
		full := filepath.Join(dir, rel)
		v := viper.New()
		v.SetFs(d.fs)
		v.SetConfigFile(full)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", full, err)
		}
		d.reg.MergeConfig(v.AllSettings())
		d.logger.Debug("Config file merged", zap.String("file", full))
	}
	return nil
}

func (d *Delegates) registrar(c loader.Category) loader.AsyncLoader {
	return func(ctx context.Context, dir string) error {
		n, err := d.registerDir(ctx, c, dir)
		if err != nil {
			return err
		}
		d.logger.Debug("Components registered",
			zap.String("category", string(c)),
			zap.String("dir", dir),
			zap.Int("count", n),
		)
		return nil
	}
}

func (d *Delegates) registerDir(ctx context.Context, c loader.Category, dir string) (int, error) {
	files, err := d.walk(ctx, dir)
	if err != nil {
		return 0, err
	}
	for _, rel := range files {
		d.reg.Register(c, utils.ComponentName(rel), filepath.Join(dir, rel))
	}
	return len(files), nil
}

// walk returns the visible regular files under dir, relative to it and in
// lexical order. A missing dir yields nothing.
func (d *Delegates) walk(ctx context.Context, dir string) ([]string, error) {
	info, err := d.fs.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []string
	err = afero.Walk(d.fs, dir, func(p string, fi fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if utils.IsHidden(rel) {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.Mode().IsRegular() {
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}
