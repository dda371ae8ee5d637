package httpx

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags on a decoded request DTO.
func Validate(v any) error {
	return validate.Struct(v)
}

// RespondValidationError writes a 422 with one message per failing field.
// Non-validator errors fall through to RespondError.
func RespondValidationError(w http.ResponseWriter, err error) {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		RespondError(w, err)
		return
	}
	errs := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs[fe.Field()] = append(errs[fe.Field()], "validasi gagal pada aturan "+fe.Tag())
	}
	FieldErrors(w, http.StatusUnprocessableEntity, "Data tidak valid", errs)
}
