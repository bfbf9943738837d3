package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// messages replace or add English translations; {0} is the config key.
var messages = map[string]string{
	"file":        "{0} must be an existing and readable file",
	"timezone":    "{0} must be an IANA time zone such as Asia/Tokyo, or empty for the local one",
	"required_if": "{0} is required when the database is enabled",
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("file", isFileReadable); err != nil {
		return nil, nil, fmt.Errorf("failed to register file validation: %w", err)
	}
	for tag, message := range messages {
		if err := registerTranslation(validate, trans, tag, message); err != nil {
			return nil, nil, err
		}
	}

	return validate, trans, nil
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, message string) error {
	err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
		return ut.Add(tag, message, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	})
	if err != nil {
		return fmt.Errorf("failed to register %s translation: %w", tag, err)
	}
	return nil
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	// owner read bit
	return info.Mode().Perm()&0400 != 0
}
