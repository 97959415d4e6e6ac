package contact

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/pkg"
)

// ContactHandler handles REST API requests for contact-form submissions.
type ContactHandler struct {
	svc domain.ContactService
}

// NewHandler creates a ContactHandler with the given service.
func NewHandler(svc domain.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// List handles GET /api/v1/contacts.
func (h *ContactHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListContacts(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Create handles POST /api/v1/contacts. Submissions arrive from the
// storefront contact form, so the route carries no session.
func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	input := domain.ContactInput{
		ContactName: req.ContactName,
		Email:       req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
	}
	if err := h.svc.CreateContact(c.Request.Context(), input); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, nil)
}

// Reply handles POST /api/v1/contacts/:id/reply.
func (h *ContactHandler) Reply(c *gin.Context) {
	var req ReplyRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	if err := h.svc.ReplyContact(c.Request.Context(), c.Param("id"), req.Reply); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Delete handles DELETE /api/v1/contacts/:id.
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
