package loader_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mvcs-loader/core/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testRoot   = "/srv/app"
	testBundle = "/srv/app/api/hooks/foo"
)

// recorder builds delegates that record which directories they were given.
type recorder struct {
	mu    sync.Mutex
	calls map[loader.Category][]string
	order []loader.Category
}

func newRecorder() *recorder {
	return &recorder{calls: make(map[loader.Category][]string)}
}

func (r *recorder) record(c loader.Category, dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[c] = append(r.calls[c], dir)
	r.order = append(r.order, c)
}

func (r *recorder) count(c loader.Category) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls[c])
}

func (r *recorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

func (r *recorder) syncFn(c loader.Category, err error) loader.SyncLoader {
	return func(dir string) error {
		r.record(c, dir)
		return err
	}
}

func (r *recorder) asyncFn(c loader.Category, err error) loader.AsyncLoader {
	return func(ctx context.Context, dir string) error {
		r.record(c, dir)
		return err
	}
}

func (r *recorder) set() loader.LoaderSet {
	return loader.LoaderSet{
		Policies:    r.syncFn(loader.CategoryPolicies, nil),
		Config:      r.syncFn(loader.CategoryConfig, nil),
		Models:      r.asyncFn(loader.CategoryModels, nil),
		Controllers: r.asyncFn(loader.CategoryControllers, nil),
		Helpers:     r.asyncFn(loader.CategoryHelpers, nil),
		Services:    r.asyncFn(loader.CategoryServices, nil),
		Responses:   r.asyncFn(loader.CategoryResponses, nil),
	}
}

func newLoader(host loader.Host, set loader.LoaderSet) *loader.Loader {
	return loader.New(host, set, loader.Options{
		BundleDir:   testBundle,
		WorkingRoot: testRoot,
		Logger:      zap.NewNop(),
	})
}

func disabledHost() *stubHost {
	return &stubHost{
		hooks:  map[string]string{"foo": "fooCfg"},
		enable: map[string]*bool{"fooCfg": boolPtr(false)},
	}
}

// callbackSpy counts invocations and keeps the last error.
type callbackSpy struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *callbackSpy) cb(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.err = err
}

func TestLoader_Name(t *testing.T) {
	l := newLoader(&stubHost{}, loader.LoaderSet{})
	assert.Equal(t, "foo", l.Name())
	assert.Equal(t, testBundle, l.Dir())
}

func TestInject_NoArgsLoadsDefaultAPIDirs(t *testing.T) {
	rec := newRecorder()
	l := newLoader(&stubHost{}, rec.set())

	require.NoError(t, l.Inject(context.Background(), loader.NoArgs()))

	assert.Equal(t, []string{testBundle + "/api/models"}, rec.calls[loader.CategoryModels])
	assert.Equal(t, []string{testBundle + "/api/controllers"}, rec.calls[loader.CategoryControllers])
	assert.Equal(t, []string{testBundle + "/api/helpers"}, rec.calls[loader.CategoryHelpers])
	assert.Equal(t, []string{testBundle + "/api/services"}, rec.calls[loader.CategoryServices])
	assert.Equal(t, []string{testBundle + "/api/responses"}, rec.calls[loader.CategoryResponses])
	assert.Zero(t, rec.count(loader.CategoryConfig))
	assert.Zero(t, rec.count(loader.CategoryPolicies))
}

func TestInject_Disabled(t *testing.T) {
	rec := newRecorder()
	l := newLoader(disabledHost(), rec.set())
	spy := &callbackSpy{}

	dirs := loader.DirectoryMap{
		loader.CategoryConfig:   "/c",
		loader.CategoryPolicies: "/p",
		loader.CategoryModels:   "/m",
		loader.CategoryServices: "/s",
	}
	require.NoError(t, l.Inject(context.Background(), loader.WithDirs(dirs, spy.cb)))

	assert.Equal(t, 1, spy.calls)
	assert.NoError(t, spy.err)
	assert.Zero(t, rec.total())
}

func TestInject_RunsCategoriesConcurrently(t *testing.T) {
	const n = 3
	var started sync.WaitGroup
	started.Add(n)
	release := make(chan struct{})
	var finished atomic.Int32

	// Each delegate waits until all three have started; a sequential
	// dispatcher would block on the first one.
	delegate := func(ctx context.Context, dir string) error {
		defer finished.Add(1)
		started.Done()
		select {
		case <-release:
			return nil
		case <-time.After(2 * time.Second):
			return errors.New("siblings never started")
		}
	}
	go func() {
		started.Wait()
		close(release)
	}()

	set := loader.LoaderSet{Models: delegate, Controllers: delegate, Services: delegate}
	l := newLoader(&stubHost{}, set)
	spy := &callbackSpy{}

	dirs := loader.DirectoryMap{
		loader.CategoryModels:      "/m",
		loader.CategoryControllers: "/c",
		loader.CategoryServices:    "/s",
	}
	require.NoError(t, l.Inject(context.Background(), loader.WithDirs(dirs, spy.cb)))

	// Inject only returns after the callback has fired, and the callback
	// only fires after every delegate has returned.
	assert.EqualValues(t, n, finished.Load())
	assert.Equal(t, 1, spy.calls)
	assert.NoError(t, spy.err)
}

func TestInject_FirstErrorWins(t *testing.T) {
	rec := newRecorder()
	boom := errors.New("models exploded")
	set := rec.set()
	set.Models = rec.asyncFn(loader.CategoryModels, boom)

	l := newLoader(&stubHost{}, set)
	spy := &callbackSpy{}

	require.NoError(t, l.Inject(context.Background(), loader.CallbackOnly(spy.cb)))

	assert.Equal(t, 1, spy.calls)
	require.Error(t, spy.err)
	assert.ErrorIs(t, spy.err, boom)

	var catErr *loader.CategoryLoadError
	require.ErrorAs(t, spy.err, &catErr)
	assert.Equal(t, loader.CategoryModels, catErr.Category)
	assert.Equal(t, testBundle+"/api/models", catErr.Dir)

	for _, c := range loader.AsyncCategories {
		assert.Equal(t, 1, rec.count(c), "category %s", c)
	}
}

func TestInject_PanicIsReported(t *testing.T) {
	rec := newRecorder()
	set := rec.set()
	set.Helpers = func(ctx context.Context, dir string) error {
		panic("bad helper")
	}

	l := newLoader(&stubHost{}, set)
	spy := &callbackSpy{}

	require.NoError(t, l.Inject(context.Background(), loader.CallbackOnly(spy.cb)))

	assert.Equal(t, 1, spy.calls)
	assert.ErrorIs(t, spy.err, loader.ErrLoaderPanic)
	assert.Equal(t, 1, rec.count(loader.CategoryModels))
	assert.Equal(t, 1, rec.count(loader.CategoryResponses))
}

func TestInject_MissingDelegate(t *testing.T) {
	l := newLoader(&stubHost{}, loader.LoaderSet{})
	spy := &callbackSpy{}

	dirs := loader.DirectoryMap{loader.CategoryModels: "/m"}
	require.NoError(t, l.Inject(context.Background(), loader.WithDirs(dirs, spy.cb)))

	assert.ErrorIs(t, spy.err, loader.ErrNoDelegate)
}

func TestInject_EmptyMapLoadsNothing(t *testing.T) {
	rec := newRecorder()
	l := newLoader(&stubHost{}, rec.set())
	spy := &callbackSpy{}

	require.NoError(t, l.Inject(context.Background(), loader.WithDirs(loader.DirectoryMap{}, spy.cb)))

	assert.Zero(t, rec.total())
	assert.Equal(t, 1, spy.calls)
	assert.NoError(t, spy.err)
}

func TestInjectAll_NilContext(t *testing.T) {
	set := loader.LoaderSet{
		Models: func(ctx context.Context, dir string) error {
			return ctx.Err()
		},
	}
	l := newLoader(&stubHost{}, set)
	spy := &callbackSpy{}

	var ctx context.Context
	dirs := loader.DirectoryMap{loader.CategoryModels: "/m"}
	require.NotPanics(t, func() {
		require.NoError(t, l.InjectAll(ctx, dirs, spy.cb))
	})

	assert.Equal(t, 1, spy.calls)
	assert.NoError(t, spy.err)
}

func TestInject_LegacyInvertedForm(t *testing.T) {
	rec := newRecorder()
	l := newLoader(&stubHost{}, rec.set())
	spy := &callbackSpy{}

	dirs := loader.DirectoryMap{loader.CategoryControllers: "/ctrl"}
	require.NoError(t, l.Adapt(context.Background(), loader.Inverted(spy.cb, dirs)))

	assert.Equal(t, 1, spy.calls)
	assert.Equal(t, []string{"/ctrl"}, rec.calls[loader.CategoryControllers])
	assert.Equal(t, 1, rec.total())
}

func TestInject_SyncRunsBeforeAsync(t *testing.T) {
	rec := newRecorder()
	l := newLoader(&stubHost{}, rec.set())

	dirs := loader.DirectoryMap{
		loader.CategoryConfig:   "/c",
		loader.CategoryPolicies: "/p",
		loader.CategoryModels:   "/m",
	}
	require.NoError(t, l.Inject(context.Background(), loader.WithDirs(dirs, nil)))

	require.Len(t, rec.order, 3)
	assert.Equal(t, []loader.Category{loader.CategoryPolicies, loader.CategoryConfig, loader.CategoryModels}, rec.order)
}

func TestInject_SyncFailureAborts(t *testing.T) {
	rec := newRecorder()
	boom := errors.New("bad policy")
	set := rec.set()
	set.Policies = rec.syncFn(loader.CategoryPolicies, boom)

	l := newLoader(&stubHost{}, set)
	spy := &callbackSpy{}

	dirs := loader.DirectoryMap{
		loader.CategoryPolicies: "/p",
		loader.CategoryConfig:   "/c",
		loader.CategoryModels:   "/m",
	}
	err := l.Inject(context.Background(), loader.WithDirs(dirs, spy.cb))

	var syncErr *loader.SyncLoadError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, loader.CategoryPolicies, syncErr.Category)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, spy.calls)
	assert.Zero(t, rec.count(loader.CategoryConfig))
	assert.Zero(t, rec.count(loader.CategoryModels))
}

func TestInject_TimeoutBoundsDelegates(t *testing.T) {
	set := loader.LoaderSet{
		Models: func(ctx context.Context, dir string) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}
	l := loader.New(&stubHost{}, set, loader.Options{
		BundleDir:   testBundle,
		WorkingRoot: testRoot,
		Timeout:     10 * time.Millisecond,
	})
	spy := &callbackSpy{}

	dirs := loader.DirectoryMap{loader.CategoryModels: "/m"}
	require.NoError(t, l.Inject(context.Background(), loader.WithDirs(dirs, spy.cb)))

	assert.ErrorIs(t, spy.err, context.DeadlineExceeded)
}

func TestConfigure(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		rec := newRecorder()
		l := newLoader(&stubHost{}, rec.set())

		require.NoError(t, l.Configure(nil))

		assert.Equal(t, []string{testBundle + "/config"}, rec.calls[loader.CategoryConfig])
		assert.Equal(t, []string{testBundle + "/policies"}, rec.calls[loader.CategoryPolicies])
		assert.Equal(t, 2, rec.total())
	})

	t.Run("Ignores async categories", func(t *testing.T) {
		rec := newRecorder()
		l := newLoader(&stubHost{}, rec.set())

		require.NoError(t, l.Configure(loader.DirectoryMap{
			loader.CategoryConfig: "/c",
			loader.CategoryModels: "/m",
		}))

		assert.Equal(t, []string{"/c"}, rec.calls[loader.CategoryConfig])
		assert.Equal(t, 1, rec.total())
	})

	t.Run("Disabled", func(t *testing.T) {
		rec := newRecorder()
		l := newLoader(disabledHost(), rec.set())

		require.NoError(t, l.Configure(nil))
		assert.Zero(t, rec.total())
	})

	t.Run("Failure is returned", func(t *testing.T) {
		rec := newRecorder()
		set := rec.set()
		set.Config = rec.syncFn(loader.CategoryConfig, errors.New("bad yaml"))
		l := newLoader(&stubHost{}, set)

		err := l.Configure(nil)
		var syncErr *loader.SyncLoadError
		require.ErrorAs(t, err, &syncErr)
		assert.Equal(t, loader.CategoryConfig, syncErr.Category)
	})
}
