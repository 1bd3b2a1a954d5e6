package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/pkg/errcode"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the config is complete and consistent. It is called
// once before a run, after all sources of options are applied.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return InvalidConfigError([]string{err.Error()}, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch {
		case fe.Tag() == "required":
			field += " is required"
		case fe.Param() != "":
			field = fmt.Sprintf("%s must satisfy %s=%s, got '%v'",
				field, fe.Tag(), fe.Param(), fe.Value())
		default:
			field = fmt.Sprintf("%s must satisfy %s, got '%v'",
				field, fe.Tag(), fe.Value())
		}
		fields = append(fields, field)
	}
	return InvalidConfigError(fields, err)
}

// InvalidConfigError reports every field that failed validation.
func InvalidConfigError(fields []string, err error) error {
	msg := "Invalid configuration:\n  <em>%s</em>"
	vars := []any{strings.Join(fields, "\n  ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ConfigInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid config: %w", fn, err),
	}
}
