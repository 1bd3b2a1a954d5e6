package ioinput

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := "Cannot open <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.InputOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn, path, err),
	}
}

func SyntenyReadError(path string, err error) error {
	msg := "Cannot read synteny table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.InputSyntenyReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read synteny %s: %w", fn, path, err),
	}
}

func SyntenyColumnsError(path string, missing []string) error {
	msg := "Synteny table <em>%s</em> misses columns: <em>%s</em>"
	cols := strings.Join(missing, ", ")
	vars := []any{path, cols}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.InputSyntenyColumnsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: synteny %s has no columns %s",
			fn, path, cols),
	}
}

func TEReadError(path string, line int, err error) error {
	msg := "Cannot read TE table <em>%s</em> at line %d"
	vars := []any{path, line}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.InputTEReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read TE %s, line %d: %w",
			fn, path, line, err),
	}
}
