package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "tebreak"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/tebreak by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/tebreak by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// NullModelCacheDir returns the directory of cached null matrices.
func NullModelCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "nullmodel")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/tebreak/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/tebreak/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
