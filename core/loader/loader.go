package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"mvcs-loader/core/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoDelegate is reported when a category is requested but the LoaderSet
// has no function for it.
var ErrNoDelegate = errors.New("no delegate registered for category")

// SyncLoader registers a directory's contents before any async work starts.
type SyncLoader func(dir string) error

// AsyncLoader registers a directory's contents. It runs concurrently with
// the other categories of the same call.
type AsyncLoader func(ctx context.Context, dir string) error

// LoadTask is one deferred category load, built fresh for every call.
type LoadTask func(ctx context.Context) error

// LoaderSet holds one delegate per category. Delegates are bound to the
// host they register into.
type LoaderSet struct {
	Policies SyncLoader
	Config   SyncLoader

	Models      AsyncLoader
	Controllers AsyncLoader
	Helpers     AsyncLoader
	Services    AsyncLoader
	Responses   AsyncLoader
}

func (s LoaderSet) syncLoader(c Category) SyncLoader {
	switch c {
	case CategoryPolicies:
		return s.Policies
	case CategoryConfig:
		return s.Config
	}
	return nil
}

func (s LoaderSet) asyncLoader(c Category) AsyncLoader {
	switch c {
	case CategoryModels:
		return s.Models
	case CategoryControllers:
		return s.Controllers
	case CategoryHelpers:
		return s.Helpers
	case CategoryServices:
		return s.Services
	case CategoryResponses:
		return s.Responses
	}
	return nil
}

// Options configures a Loader.
type Options struct {
	// BundleDir is the bundle's base directory. Default directories are
	// built under it and the bundle name is derived from it.
	BundleDir string
	// WorkingRoot is stripped from BundleDir before deriving the name.
	// Defaults to the process working directory.
	WorkingRoot string
	// Logger receives progress and error logs. Defaults to a no-op logger.
	Logger *zap.Logger
	// Timeout bounds the context handed to async delegates. Zero means untimed.
	Timeout time.Duration
}

// Loader sequences the loading of one bundle into a host.
type Loader struct {
	host        Host
	loaders     LoaderSet
	bundleDir   string
	workingRoot string
	logger      *zap.Logger
	timeout     time.Duration
}

// New creates a loader for the bundle described by opts.
func New(host Host, loaders LoaderSet, opts Options) *Loader {
	root := opts.WorkingRoot
	if root == "" {
		root, _ = os.Getwd()
	}
	dir := opts.BundleDir
	if dir == "" {
		dir = root
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		host:        host,
		loaders:     loaders,
		bundleDir:   dir,
		workingRoot: root,
		logger:      log,
		timeout:     opts.Timeout,
	}
}

// Name returns the bundle name used to look up hook metadata.
func (l *Loader) Name() string {
	return BundleName(l.workingRoot, l.bundleDir)
}

// Dir returns the bundle's base directory.
func (l *Loader) Dir() string {
	return l.bundleDir
}

// Configure loads the policies and config categories synchronously. With a
// nil map the defaults under the bundle directory are used. Other
// categories in dirs are ignored.
func (l *Loader) Configure(dirs DirectoryMap) error {
	if dirs == nil {
		dirs = DefaultConfigDirs(l.bundleDir)
	}
	only := DirectoryMap{}
	for _, c := range []Category{CategoryPolicies, CategoryConfig} {
		if dirs.Has(c) {
			only[c] = dirs[c]
		}
	}
	return l.InjectAll(context.Background(), only, nil)
}

// Inject runs the full orchestration for the given call form. The aggregate
// result goes to the form's callback; the returned error is only set when
// a synchronous delegate failed, in which case the callback is not called.
func (l *Loader) Inject(ctx context.Context, form CallForm) error {
	dirs, cb := Normalize(form, l.bundleDir)
	return l.InjectAll(ctx, dirs, cb)
}

// Adapt is the historical name of Inject.
func (l *Loader) Adapt(ctx context.Context, form CallForm) error {
	return l.Inject(ctx, form)
}

// InjectAll loads every category present in dirs if the bundle is enabled.
// cb is invoked exactly once, after all async categories have settled,
// with nil or the first error observed.
func (l *Loader) InjectAll(ctx context.Context, dirs DirectoryMap, cb Callback) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cb == nil {
		cb = noop
	}
	log := logger.WithRunID(l.logger, uuid.NewString())

	rel := RelativePath(l.workingRoot, l.bundleDir)
	name := BundleName(l.workingRoot, l.bundleDir)
	enabled := ResolveEnabled(l.host, name)

	msg := "Skip bundle"
	if enabled {
		msg = "Load bundle"
	}
	log.Info(msg,
		zap.String("bundle", name),
		zap.Strings("categories", dirs.Keys()),
		zap.String("path", rel),
	)

	if !enabled {
		cb(nil)
		return nil
	}

	if err := l.applySync(dirs, log); err != nil {
		return err
	}

	err := l.dispatch(ctx, dirs, log)
	if err != nil {
		log.Error("Bundle load failed", zap.String("bundle", name), zap.Error(err))
	}
	cb(err)
	return nil
}

// applySync runs policies then config. The first failure aborts the call.
func (l *Loader) applySync(dirs DirectoryMap, log *zap.Logger) error {
	for _, c := range []Category{CategoryPolicies, CategoryConfig} {
		if !dirs.Has(c) {
			continue
		}
		fn := l.loaders.syncLoader(c)
		if fn == nil {
			return &SyncLoadError{Category: c, Dir: dirs[c], Err: ErrNoDelegate}
		}
		if err := fn(dirs[c]); err != nil {
			return &SyncLoadError{Category: c, Dir: dirs[c], Err: err}
		}
		log.Debug("Category loaded", zap.String("category", string(c)), zap.String("dir", dirs[c]))
	}
	return nil
}

// dispatch starts one task per async category and waits for all of them.
// A plain errgroup.Group never cancels siblings, and Wait returns the
// first error only after every task has returned.
func (l *Loader) dispatch(ctx context.Context, dirs DirectoryMap, log *zap.Logger) error {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var g errgroup.Group
	for _, c := range AsyncCategories {
		if !dirs.Has(c) {
			continue
		}
		task := l.task(c, dirs[c], log)
		g.Go(func() error {
			return task(ctx)
		})
	}
	return g.Wait()
}

func (l *Loader) task(c Category, dir string, log *zap.Logger) LoadTask {
	fn := l.loaders.asyncLoader(c)
	return func(ctx context.Context) (err error) {
		if fn == nil {
			return &CategoryLoadError{Category: c, Dir: dir, Err: ErrNoDelegate}
		}
		defer func() {
			if rec := recover(); rec != nil {
				err = &CategoryLoadError{Category: c, Dir: dir, Err: fmt.Errorf("%w: %v", ErrLoaderPanic, rec)}
			}
		}()
		if err := fn(ctx, dir); err != nil {
			return &CategoryLoadError{Category: c, Dir: dir, Err: err}
		}
		log.Debug("Category loaded", zap.String("category", string(c)), zap.String("dir", dir))
		return nil
	}
}
