package loader

import (
	"errors"
	"fmt"
)

// ErrLoaderPanic wraps a panic recovered from a category delegate.
var ErrLoaderPanic = errors.New("loader: panic in category delegate")

// CategoryLoadError is reported when an asynchronous category fails to load.
type CategoryLoadError struct {
	Category Category
	Dir      string
	Err      error
}

func (e *CategoryLoadError) Error() string {
	return fmt.Sprintf("load %s from %q: %v", e.Category, e.Dir, e.Err)
}

func (e *CategoryLoadError) Unwrap() error { return e.Err }

// SyncLoadError is returned when the policies or config delegate fails.
// It aborts the remainder of the call.
type SyncLoadError struct {
	Category Category
	Dir      string
	Err      error
}

func (e *SyncLoadError) Error() string {
	return fmt.Sprintf("inject %s from %q: %v", e.Category, e.Dir, e.Err)
}

func (e *SyncLoadError) Unwrap() error { return e.Err }
