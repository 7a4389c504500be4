package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/GregMSThompson/backup-dashboard/internal/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeBody reads a JSON request body into dst and checks its validate tags.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewValidationError("request body must be valid JSON")
	}
	if err := validate.Struct(dst); err != nil {
		return errs.NewValidationError(err.Error())
	}
	return nil
}
