package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/adamwoolhether/rhodium/errs"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("config: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// Validate checks cfg against its declared tags. Every failing field is
// reported as its own [errs.ConfigurationError]; several are joined.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrors validator.ValidationErrors
		if !errors.As(err, &verrors) {
			return err
		}

		fields := make([]error, 0, len(verrors))
		for _, verror := range verrors {
			fields = append(fields, errForTag(verror))
		}

		return errors.Join(fields...)
	}

	return nil
}

// ValidateToken checks only the settings needed for the token exchange,
// in the order TokenUrl, ClientId, ClientSecret, Audience, and reports the
// first one that is not set.
func ValidateToken(cfg Config) error {
	switch {
	case cfg.TokenUrl == "":
		return errs.NewConfigurationError("TokenUrl")
	case cfg.ClientId == "":
		return errs.NewConfigurationError("ClientId")
	case cfg.ClientSecret == "":
		return errs.NewConfigurationError("ClientSecret")
	case cfg.Audience == "":
		return errs.NewConfigurationError("Audience")
	}

	return nil
}

func errForTag(verror validator.FieldError) error {
	switch verror.Tag() {
	case "required":
		return errs.NewConfigurationError(verror.Field())
	default:
		return errs.NewInvalidConfigurationError(verror.Field(), verror.Translate(translator))
	}
}
