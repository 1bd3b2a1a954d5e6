package iooutput

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/pkg/errcode"
)

func FormatError(format string, err error) error {
	msg := "Output format <em>%s</em> is not supported"
	vars := []any{format}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.OutputFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown format %s: %w", fn, format, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.OutputWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, path, err),
	}
}

func ManifestError(path string, err error) error {
	msg := "Cannot write run manifest <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.OutputManifestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write manifest %s: %w", fn, path, err),
	}
}
