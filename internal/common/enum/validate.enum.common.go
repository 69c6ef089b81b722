package enum

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// ValidateEnum is a validator.Func for any enum type exposing IsValid() bool.
func ValidateEnum(fl validator.FieldLevel) bool {
	field := fl.Field()

	method := field.MethodByName("IsValid")
	if !method.IsValid() && field.CanAddr() {
		method = field.Addr().MethodByName("IsValid")
	}
	if !method.IsValid() {
		return false
	}

	result := method.Call(nil)
	if len(result) != 1 || result[0].Kind() != reflect.Bool {
		return false
	}
	return result[0].Bool()
}
