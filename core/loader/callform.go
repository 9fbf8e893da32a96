package loader

// Callback receives the aggregate result of one Inject call.
type Callback func(err error)

func noop(error) {}

// CallForm is one of the historical ways Inject can be called. The set is
// closed; build values with NoArgs, CallbackOnly, WithDirs or Inverted.
type CallForm interface {
	parts() (DirectoryMap, Callback)
}

type noArgs struct{}

func (noArgs) parts() (DirectoryMap, Callback) { return nil, nil }

type callbackOnly struct{ cb Callback }

func (f callbackOnly) parts() (DirectoryMap, Callback) { return nil, f.cb }

type withDirs struct {
	dirs DirectoryMap
	cb   Callback
}

func (f withDirs) parts() (DirectoryMap, Callback) { return f.dirs, f.cb }

type inverted struct {
	cb   Callback
	dirs DirectoryMap
}

// The legacy order is swapped back here.
func (f inverted) parts() (DirectoryMap, Callback) { return f.dirs, f.cb }

// NoArgs loads the default API directories and discards the result.
func NoArgs() CallForm { return noArgs{} }

// CallbackOnly loads the default API directories and reports to cb.
func CallbackOnly(cb Callback) CallForm { return callbackOnly{cb: cb} }

// WithDirs is the canonical form.
func WithDirs(dirs DirectoryMap, cb Callback) CallForm { return withDirs{dirs: dirs, cb: cb} }

// Inverted is the legacy callback-first form.
func Inverted(cb Callback, dirs DirectoryMap) CallForm { return inverted{cb: cb, dirs: dirs} }

// Normalize resolves a call form into a directory map and a callback that
// is never nil. A nil map falls back to DefaultAPIDirs; an empty one loads
// nothing.
func Normalize(form CallForm, bundleRoot string) (DirectoryMap, Callback) {
	if form == nil {
		form = NoArgs()
	}
	dirs, cb := form.parts()
	if dirs == nil {
		dirs = DefaultAPIDirs(bundleRoot)
	}
	if cb == nil {
		cb = noop
	}
	return dirs, cb
}
