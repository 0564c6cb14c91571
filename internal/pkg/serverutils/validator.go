package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"algodraft-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags on a request DTO and folds every
// violation into one MalformedRequest error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			fields := make([]string, 0, len(errs))
			for _, fe := range errs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return apperror.Newf(apperror.KindMalformedRequest,
				"invalid request: %s", strings.Join(fields, ", "))
		}
		return apperror.Wrap(apperror.KindMalformedRequest, "invalid request", err)
	}
	return nil
}
