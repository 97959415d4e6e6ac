// Package media exposes the image upload pipeline over HTTP. A form
// session is opened when an entity form opens, fed by file selection and
// crop calls, polled for progress, and committed by the entity save.
package media

import (
	"image"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/pkg"
	"github.com/freshmart/admin-console/internal/upload"
)

// maxSelectBytes bounds the raw file accepted for selection, before
// compression. Phone photos run tens of megabytes.
const maxSelectBytes = 32 << 20

// MediaHandler handles REST API requests for image form sessions.
type MediaHandler struct {
	forms *upload.Manager
}

// NewHandler creates a MediaHandler around the given form manager.
func NewHandler(forms *upload.Manager) *MediaHandler {
	return &MediaHandler{forms: forms}
}

// Open handles POST /api/v1/media/forms.
func (h *MediaHandler) Open(c *gin.Context) {
	var req OpenFormRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	id, _ := h.forms.Open(upload.Asset{URL: req.ImageURL, PublicID: req.ImagePublicID})
	pkg.Created(c, OpenFormResponse{FormID: id})
}

// Select handles POST /api/v1/media/forms/:id/file. The image arrives as
// a multipart field named "image".
func (h *MediaHandler) Select(c *gin.Context) {
	form, err := h.forms.Get(c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "image file is required", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSelectBytes+1))
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "failed to read image", err))
		return
	}
	if len(data) > maxSelectBytes {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "image file is too large", nil))
		return
	}

	if err := form.Select(data); err != nil {
		pkg.Error(c, err)
		return
	}

	bounds, err := form.Bounds()
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, BoundsResponse{Width: bounds.Dx(), Height: bounds.Dy()})
}

// Crop handles POST /api/v1/media/forms/:id/crop. It finalizes the crop
// and starts the upload; progress is polled via Snapshot.
func (h *MediaHandler) Crop(c *gin.Context) {
	form, err := h.forms.Get(c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req CropRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	rect := image.Rect(req.X, req.Y, req.X+req.Width, req.Y+req.Height)
	if err := form.Crop(rect); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, form.Snapshot())
}

// Link handles POST /api/v1/media/forms/:id/link.
func (h *MediaHandler) Link(c *gin.Context) {
	form, err := h.forms.Get(c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req LinkRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	form.PasteLink(req.URL)
	pkg.Success(c, form.Snapshot())
}

// Snapshot handles GET /api/v1/media/forms/:id. The browser polls it for
// upload progress.
func (h *MediaHandler) Snapshot(c *gin.Context) {
	form, err := h.forms.Get(c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, form.Snapshot())
}

// Close handles DELETE /api/v1/media/forms/:id. The form is abandoned and
// any uncommitted upload rolled back.
func (h *MediaHandler) Close(c *gin.Context) {
	h.forms.Close(c.Param("id"))
	pkg.Success(c, nil)
}
