package runpod

import (
	"strings"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

type validatable interface {
	Validate(formats strfmt.Registry) error
}

// checkInput rejects nil inputs and inputs that fail their own validation.
// Only required fields and closed enums are checked; value ranges are left
// to the server.
func checkInput(op string, in interface{}, isNil bool) error {
	if isNil {
		return invalidRequest(op, "input is required", nil)
	}
	v, ok := in.(validatable)
	if !ok {
		return nil
	}
	if err := v.Validate(strfmt.Default); err != nil {
		return invalidRequest(op, "invalid input", err)
	}
	return nil
}

func requireID(op, name, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidRequest(op, name+" is required", nil)
	}
	return nil
}

// validations collects field errors into a single composite error.
type validations []error

func (v *validations) add(err *errors.Validation) {
	if err != nil {
		*v = append(*v, err)
	}
}

func (v validations) err() error {
	if len(v) == 0 {
		return nil
	}
	return errors.CompositeValidationError(v...)
}

func (v *validations) requiredString(path, value string) {
	v.add(validate.RequiredString(path, "body", value))
}

func (v *validations) required(path string, value interface{}) {
	v.add(validate.Required(path, "body", value))
}

func enumOne[T ~string](v *validations, path string, table enumTable[T], value *T) {
	if value == nil {
		return
	}
	v.add(validate.EnumCase(path, "body", string(*value), table.strings(), true))
}
