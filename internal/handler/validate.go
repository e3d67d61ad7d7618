package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// payloadValidator decodes and validates JSON request payloads, translating
// validation failures into readable English messages.
type payloadValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newPayloadValidator() *payloadValidator {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = entranslations.RegisterDefaultTranslations(validate, trans)

	return &payloadValidator{
		validate: validate,
		trans:    trans,
	}
}

// decode parses the request body into payload and validates it. The returned
// error message is safe to surface to the caller.
func (v *payloadValidator) decode(r *http.Request, payload any) error {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return errors.New("invalid request body")
	}

	if err := v.validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return errors.New(validationErrors[0].Translate(v.trans))
		}

		return errors.New("invalid request")
	}

	return nil
}
