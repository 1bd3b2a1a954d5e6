package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Application directory and config file errors
	AppDirError
	DefaultConfigError
	ConfigLoadError

	// Logging errors
	CreateLogFileError

	// Config errors
	ConfigInvalidError

	// Input errors
	InputOpenError
	InputSyntenyReadError
	InputSyntenyColumnsError
	InputTEReadError
	InputEmptySyntenyError
	InputEmptyTEError

	// Analysis errors
	AnalysisChromLengthError
	AnalysisWindowsError
	AnalysisSamplerError
	AnalysisEvaluateError
	AnalysisCanceledError

	// Output errors
	OutputFormatError
	OutputWriteError
	OutputManifestError

	// Store errors
	StoreOpenError
	StoreSchemaError
	StoreInsertError
	StoreQueryError

	// Cache errors
	CacheOpenError
	CacheReadError
	CacheWriteError

	// Prep errors
	PrepRepeatMaskerError
	PrepClassMapError
	PrepEmptyClassMapError
	PrepGFFError
)
