package iodb

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/pkg/errcode"
)

var errNotConnected = errors.New("database is not connected")

func OpenError(path string, err error) error {
	msg := "Cannot open results database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn, path, err),
	}
}

func SchemaError(path string, err error) error {
	msg := "Cannot create tables in results database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreSchemaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot create schema: %w", fn, err),
	}
}

func InsertError(runID string, err error) error {
	msg := "Cannot save run <em>%s</em> to results database"
	vars := []any{runID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot save run %s: %w", fn, runID, err),
	}
}

func QueryError(table string, err error) error {
	msg := "Cannot read <em>%s</em> from results database"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot query %s: %w", fn, table, err),
	}
}
