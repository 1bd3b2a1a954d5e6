package analysis

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/pkg/errcode"
)

func EmptySyntenyError(genome, chrom string, err error) error {
	msg := "No synteny blocks found for genome <em>%s</em> " +
		"and chromosome <em>%s</em>"
	vars := []any{genome, chrom}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.InputEmptySyntenyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: empty synteny selection (%s, %s): %w",
			fn, genome, chrom, err),
	}
}

func EmptyTEError(chrom string, err error) error {
	msg := "No TE annotations found for chromosome <em>%s</em>"
	vars := []any{chrom}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.InputEmptyTEError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: empty TE selection (%s): %w",
			fn, chrom, err),
	}
}

func ChromLengthError(chrom string, length int) error {
	msg := "Chromosome <em>%s</em> has invalid length %d"
	vars := []any{chrom, length}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.AnalysisChromLengthError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: non-positive chromosome length %d",
			fn, length),
	}
}

func WindowsError(err error) error {
	msg := "Cannot build breakpoint windows"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.AnalysisWindowsError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func SamplerError(err error) error {
	msg := "Cannot build the null distribution"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.AnalysisSamplerError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func EvaluateError(err error) error {
	msg := "Cannot evaluate enrichment of TE families"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.AnalysisEvaluateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func CanceledError(err error) error {
	msg := "Analysis was canceled"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.AnalysisCanceledError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
