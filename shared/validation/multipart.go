package validation

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/studyhub-dev/studyhub/shared/logger"
)

// formOverhead is the allowance for text fields and multipart boundaries on top of the image.
const formOverhead = 1 << 20

// ParseMultipart caps the request body and parses the multipart form.
// Exceeding the cap makes the server stop reading, so clients may see a reset connection.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxImageSize int64) error {
	limit := CalculateMaxRequestSize(maxImageSize, formOverhead)
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var mbe *http.MaxBytesError
		if stderrors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return ErrPayloadTooLarge
		}
		logger.Log.Debug("failed to parse multipart form", "error", err)
		return ErrMalformedForm
	}
	return nil
}

// CalculateMaxRequestSize returns the maximum request size including overhead buffer.
func CalculateMaxRequestSize(maxAttachmentSize int64, bufferSize int64) int64 {
	return maxAttachmentSize + bufferSize
}
