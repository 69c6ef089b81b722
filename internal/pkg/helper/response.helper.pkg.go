package helper

import (
	types "checkout-hub/internal/common/type"
	"checkout-hub/internal/pkg/logger"
	"net/http"
)

// ParseResponse normalizes a service response before it is sent: fills a
// default message from the status code and logs the underlying error.
func ParseResponse(r *types.Response) *types.Response {
	if r.Code == 0 {
		r.Code = http.StatusInternalServerError
	}

	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}

	if r.Error != nil {
		logger.Error.Printf("%d %s: %v", r.Code, r.Message, r.Error)
	}

	return r
}
