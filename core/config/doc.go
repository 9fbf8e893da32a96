// Package config provides configuration management for mvcs-loader.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional config file (config.yaml).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Loader: working root, per-call timeout and delegate source (fs, s3)
//   - Host: hook metadata (bundle name -> config key) and per-key settings
//   - Server: status server port and API key
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//
// Scalar keys can be overridden from the environment (LOADER_SOURCE, LOG_LEVEL, ...).
// The host hooks and settings maps are only read from config.yaml:
//
//	host:
//	  hooks:
//	    blog: blogConfig
//	  settings:
//	    blogConfig:
//	      enable: false
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	h := host.FromConfig(cfg.Host)
package config
