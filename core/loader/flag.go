package loader

// Host is the read-only view of the running application the loader consults
// to decide whether a bundle is enabled.
type Host interface {
	// HookConfigKey returns the config key registered for the named hook.
	// ok is false when the hook is unknown or has no config key.
	HookConfigKey(name string) (key string, ok bool)
	// BundleEnabled returns the "enable" setting stored under configKey.
	// set is false when the config object or its enable field is missing.
	BundleEnabled(configKey string) (enabled bool, set bool)
}

// ResolveEnabled reports whether the bundle is enabled. Anything missing
// along the hook -> configKey -> enable chain resolves to true.
func ResolveEnabled(host Host, bundleName string) bool {
	if host == nil {
		return true
	}
	key, ok := host.HookConfigKey(bundleName)
	if !ok || key == "" {
		return true
	}
	enabled, set := host.BundleEnabled(key)
	if !set {
		return true
	}
	return enabled
}
