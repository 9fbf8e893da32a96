package loader

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Bundle pairs a loader with the directories it should load.
type Bundle struct {
	Loader *Loader
	// ConfigDirs is passed to Configure. Nil uses DefaultConfigDirs.
	ConfigDirs DirectoryMap
	// Dirs is passed to Inject. Nil uses DefaultAPIDirs.
	Dirs DirectoryMap
}

// Manager holds the registry of bundles loaded into one host.
type Manager struct {
	bundles []Bundle
	logger  *zap.Logger
}

// NewManager creates an empty manager.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

// Register adds a bundle. Bundles load in registration order.
func (m *Manager) Register(b Bundle) {
	m.bundles = append(m.bundles, b)
}

// Names returns the registered bundle names.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.bundles))
	for _, b := range m.bundles {
		names = append(names, b.Loader.Name())
	}
	return names
}

// LoadAll configures every bundle, then injects every bundle that
// configured cleanly. Failures are joined; one failing bundle does not
// stop the others.
func (m *Manager) LoadAll(ctx context.Context) error {
	var errs []error
	failed := make(map[int]bool)

	for i, b := range m.bundles {
		if err := b.Loader.Configure(b.ConfigDirs); err != nil {
			m.logger.Error("Failed to configure bundle", zap.String("bundle", b.Loader.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("bundle %s: %w", b.Loader.Name(), err))
			failed[i] = true
		}
	}

	for i, b := range m.bundles {
		if failed[i] {
			continue
		}
		var result error
		if err := b.Loader.Inject(ctx, WithDirs(b.Dirs, func(err error) { result = err })); err != nil {
			result = err
		}
		if result != nil {
			errs = append(errs, fmt.Errorf("bundle %s: %w", b.Loader.Name(), result))
			continue
		}
		m.logger.Info("Bundle loaded", zap.String("bundle", b.Loader.Name()))
	}

	return errors.Join(errs...)
}
