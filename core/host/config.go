package host

// Config holds the hook metadata and settings the host starts with.
type Config struct {
	// Hooks maps a bundle name to the config key holding its settings.
	Hooks map[string]string `mapstructure:"hooks"`
	// Settings maps a config key to its settings object.
	Settings map[string]any `mapstructure:"settings"`
}
