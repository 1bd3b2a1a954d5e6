package ioprep

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/pkg/errcode"
)

func RepeatMaskerError(path string, err error) error {
	msg := "Cannot convert RepeatMasker output <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.PrepRepeatMaskerError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot convert %s: %w", fn, path, err),
	}
}

func ClassMapError(path string, err error) error {
	msg := "Cannot read repeat class map <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.PrepClassMapError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read map %s: %w", fn, path, err),
	}
}

func EmptyClassMapError(path string) error {
	msg := "Repeat class map <em>%s</em> has no entries"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.PrepEmptyClassMapError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: class map %s is empty", fn, path),
	}
}

func GFFError(path string, err error) error {
	msg := "Cannot add repeat classes to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.PrepGFFError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot process %s: %w", fn, path, err),
	}
}
