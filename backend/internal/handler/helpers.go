package handler

import (
	"io"
	"net/http"

	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/errors"
	mw "github.com/studyhub-dev/studyhub/shared/middleware"
	"github.com/studyhub-dev/studyhub/shared/utils"
	"github.com/studyhub-dev/studyhub/shared/validation"
)

const imageField = "image"

var errNoIdentity = errors.Unauthenticated("No token, authorization denied")

// identity returns the caller verified by the auth middleware. It writes a 401 when the
// route was mounted without authentication.
func identity(w http.ResponseWriter, r *http.Request) (*domain.Identity, bool) {
	id := mw.GetUserFromContext(r)
	if id == nil {
		utils.WriteErrorAndStatusCode(w, errNoIdentity)
		return nil, false
	}
	return id, true
}

// parseImageForm parses a multipart request and validates its optional image field.
// cleanup is always safe to call.
func (h *Handler) parseImageForm(w http.ResponseWriter, r *http.Request) (image *domain.PendingImage, cleanup func(), err error) {
	cleanup = func() {}
	if err = validation.ParseMultipart(w, r, h.cfg.Public.MaxImageSize); err != nil {
		return nil, cleanup, err
	}
	cleanup = func() {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}

	var closer io.Closer
	image, closer, err = validation.FormImage(r, imageField, validation.ImageRules{
		MaxSize:      h.cfg.Public.MaxImageSize,
		AllowedMimes: h.cfg.Public.AllowedImageMimeTypes,
	})
	if err != nil {
		return nil, cleanup, err
	}
	if closer != nil {
		removeForm := cleanup
		cleanup = func() {
			closer.Close()
			removeForm()
		}
	}
	return image, cleanup, nil
}
