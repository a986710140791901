package model

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/deppfellow/travelcard-api/internal/validation"
)

// validate is shared by all request types of this package.
//
// CardNumber is validated through its truthiness, so `required` rejects
// missing, null, 0 and "" exactly like the frontend's own check.
var validate = func() *validator.Validate {
	v := validation.NewValidator()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if n, ok := field.Interface().(CardNumber); ok {
			return n.Truthy()
		}
		return nil
	}, CardNumber{})
	return v
}()

// GetTravelCardRequest is the body of POST /api/travel-card.
type GetTravelCardRequest struct {
	TravelCardNumber CardNumber `json:"travelCardNumber" validate:"required" label:"Travel card number"`
}

// Validate implements validation.Validatable.
func (r *GetTravelCardRequest) Validate() error {
	return validate.Struct(r)
}
