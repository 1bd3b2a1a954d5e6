package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/pkg/errcode"
)

// AppDirError is returned when a config, cache or log directory of
// tebreak cannot be made.
func AppDirError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.AppDirError,
		Msg:  "Cannot prepare tebreak directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: mkdir %s failed: %w", fn, dir, err),
	}
}

// DefaultConfigError is returned when the default config.yaml cannot be
// written.
func DefaultConfigError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DefaultConfigError,
		Msg:  "Cannot write default settings to <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: default config %s not saved: %w", fn, path, err),
	}
}

// ConfigLoadError is returned when config.yaml cannot be read or decoded.
func ConfigLoadError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  "Cannot load settings from <em>%s</em>, check its YAML",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: config %s not loaded: %w", fn, path, err),
	}
}
