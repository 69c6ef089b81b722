package types

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Response is the internal result type every service returns. Handlers hand
// it to the "send" responder installed by the response middleware.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   error  `json:"-"`
}

// ResponseAPI is the wire shape of Response.
type ResponseAPI struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ValidateStringToBool(fl validator.FieldLevel) bool {
	_, err := strconv.ParseBool(fl.Field().String())
	return err == nil
}
