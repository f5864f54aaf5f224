package validation

import (
	"net/http"

	"github.com/studyhub-dev/studyhub/shared/errors"
)

var (
	// ErrPayloadTooLarge is returned when the request body or the image exceeds size limits
	ErrPayloadTooLarge = &errors.ErrorWithStatusCode{Message: "Image is too large", StatusCode: http.StatusRequestEntityTooLarge}
	ErrMalformedForm   = errors.Validation("Invalid multipart form")
	ErrInvalidMimeType = errors.Validation("Unsupported image type")
	ErrInvalidImage    = errors.Validation("Invalid image file")
	ErrImageRequired   = errors.Validation("Image is required")
)
