package loader

import "time"

// Config holds configuration for bundle loading.
type Config struct {
	// WorkingRoot is stripped from bundle paths to derive bundle names.
	// Empty means the process working directory.
	WorkingRoot string `mapstructure:"working_root" default:""`
	// TimeoutSeconds bounds each inject call. Zero means untimed.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"0"`
	// Source selects the delegate set (fs, s3).
	Source string `mapstructure:"source" default:"fs"`
}

const (
	SourceFS = "fs"
	SourceS3 = "s3"
)

// IsValidSource checks if the configured source is known.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceFS, SourceS3:
		return true
	default:
		return false
	}
}

// Timeout returns TimeoutSeconds as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
