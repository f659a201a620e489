package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/leapstack-labs/reposql/pkg/ddl/builtin"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("dialect", func(fl validator.FieldLevel) bool {
			_, ok := builtin.Lookup(fl.Field().String())
			return ok
		})
	})
	return validate
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// describe turns a field error into a message naming the config key.
func describe(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "dialect":
		return fmt.Sprintf("%s: unknown dialect %q (available: %s)", key, fe.Value(), strings.Join(builtin.IDs(), ", "))
	case "unique":
		return fmt.Sprintf("%s: dialects must not repeat", key)
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of %s", key, fe.Value(), fe.Param())
	case "hostname_port":
		return fmt.Sprintf("%s: %q is not a host:port address", key, fe.Value())
	case "required", "required_if":
		return fmt.Sprintf("%s is required", key)
	case "startswith":
		return fmt.Sprintf("%s: %q must start with %q", key, fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s=%s", key, fe.Tag(), fe.Param())
	}
}
