package host

import (
	"sort"
	"strings"
	"sync"

	"mvcs-loader/core/loader"
	"mvcs-loader/core/utils"
)

// Host is an in-memory application host. Delegates register bundle
// contents into its registries, possibly from several goroutines at once.
//
// Hook names and config keys are case-insensitive, matching how viper
// decodes configuration.
type Host struct {
	mu       sync.RWMutex
	hooks    map[string]string
	config   map[string]map[string]any
	registry map[loader.Category]map[string]string
}

var _ loader.Host = (*Host)(nil)

// New creates an empty host.
func New() *Host {
	return &Host{
		hooks:    make(map[string]string),
		config:   make(map[string]map[string]any),
		registry: make(map[loader.Category]map[string]string),
	}
}

// FromConfig creates a host seeded with hook metadata and settings.
func FromConfig(cfg Config) *Host {
	h := New()
	for name, key := range cfg.Hooks {
		h.RegisterHook(name, key)
	}
	h.MergeConfig(cfg.Settings)
	return h
}

// RegisterHook records the config key for a bundle name. An empty key
// registers the hook without settings.
func (h *Host) RegisterHook(name, configKey string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks[strings.ToLower(name)] = strings.ToLower(configKey)
}

// HookConfigKey implements loader.Host.
func (h *Host) HookConfigKey(name string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	key, ok := h.hooks[strings.ToLower(name)]
	return key, ok && key != ""
}

// BundleEnabled implements loader.Host.
func (h *Host) BundleEnabled(configKey string) (bool, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	cfg, ok := h.config[strings.ToLower(configKey)]
	if !ok {
		return false, false
	}
	return utils.ToBool(cfg["enable"])
}

// MergeConfig merges top-level settings objects into the config store.
// Object values are merged key by key; anything else replaces the entry
// under a "value" key.
func (h *Host) MergeConfig(settings map[string]any) {
	if len(settings) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, val := range settings {
		key = strings.ToLower(key)
		dst, ok := h.config[key]
		if !ok {
			dst = make(map[string]any)
			h.config[key] = dst
		}
		obj, isObj := utils.ToStringMap(val)
		if !isObj {
			dst["value"] = val
			continue
		}
		for k, v := range obj {
			dst[strings.ToLower(k)] = v
		}
	}
}

// Config returns a copy of the settings stored under key.
func (h *Host) Config(key string) (map[string]any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	cfg, ok := h.config[strings.ToLower(key)]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}
	return out, true
}

// Register records a named component of the given category. A later
// registration under the same name replaces the earlier one.
func (h *Host) Register(c loader.Category, name, source string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	reg, ok := h.registry[c]
	if !ok {
		reg = make(map[string]string)
		h.registry[c] = reg
	}
	reg[name] = source
}

// Lookup returns the source a component was registered from.
func (h *Host) Lookup(c loader.Category, name string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	src, ok := h.registry[c][name]
	return src, ok
}

// Names returns the sorted component names registered for a category.
func (h *Host) Names(c loader.Category) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.registry[c]))
	for name := range h.registry[c] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot is a point-in-time copy of the host state.
type Snapshot struct {
	Hooks      map[string]string   `json:"hooks"`
	ConfigKeys []string            `json:"config_keys"`
	Registries map[string][]string `json:"registries"`
}

// Snapshot copies the current hooks, config keys and registries.
func (h *Host) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snap := Snapshot{
		Hooks:      make(map[string]string, len(h.hooks)),
		ConfigKeys: make([]string, 0, len(h.config)),
		Registries: make(map[string][]string, len(h.registry)),
	}
	for name, key := range h.hooks {
		snap.Hooks[name] = key
	}
	for key := range h.config {
		snap.ConfigKeys = append(snap.ConfigKeys, key)
	}
	sort.Strings(snap.ConfigKeys)
	for c, reg := range h.registry {
		names := make([]string, 0, len(reg))
		for name := range reg {
			names = append(names, name)
		}
		sort.Strings(names)
		snap.Registries[string(c)] = names
	}
	return snap
}
