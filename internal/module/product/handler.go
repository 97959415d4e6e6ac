package product

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/pkg"
	"github.com/freshmart/admin-console/internal/upload"
)

// ProductHandler handles REST API requests for the product resource.
type ProductHandler struct {
	svc   domain.ProductService
	forms *upload.Manager
}

// NewHandler creates a ProductHandler with the given service and image
// form manager.
func NewHandler(svc domain.ProductService, forms *upload.Manager) *ProductHandler {
	return &ProductHandler{svc: svc, forms: forms}
}

// Create handles POST /api/v1/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req SaveProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	input, form, err := h.buildInput(req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	product, err := h.svc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	h.commitForm(c.Request.Context(), req.FormID, form)
	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "success",
		Data:    product,
	})
}

// Get handles GET /api/v1/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, product)
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListProducts(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	var req SaveProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	input, form, err := h.buildInput(req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	product, err := h.svc.UpdateProduct(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	h.commitForm(c.Request.Context(), req.FormID, form)
	pkg.Success(c, product)
}

// Delete handles DELETE /api/v1/products/:id. The body must carry the
// product's retyped name.
func (h *ProductHandler) Delete(c *gin.Context) {
	var req DeleteProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id"), req.Confirm); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// buildInput resolves the image reference for a save. An open form session
// wins over a pasted link sent directly in the request body; an upload
// still in flight on that form never reaches the saved product.
func (h *ProductHandler) buildInput(req SaveProductRequest) (domain.ProductInput, *upload.Orchestrator, error) {
	input := domain.ProductInput{
		ProductName: req.ProductName,
		Category:    req.Category,
		Desc:        req.Desc,
		Price:       req.Price,
		ImageURL:    req.ImageLink,
	}

	if req.FormID == "" {
		return input, nil, nil
	}

	form, err := h.forms.Get(req.FormID)
	if err != nil {
		return domain.ProductInput{}, nil, err
	}
	if req.ImageLink != "" {
		form.PasteLink(req.ImageLink)
	}
	ref := form.Reference()
	input.ImageURL = ref.URL
	input.ImagePublicID = ref.PublicID
	return input, form, nil
}

// commitForm finalizes the image form after a successful save: the
// replaced image (if any) is deleted and the session released. Deletion
// failures are not surfaced; the save already succeeded.
func (h *ProductHandler) commitForm(ctx context.Context, formID string, form *upload.Orchestrator) {
	if form == nil {
		return
	}
	_ = form.Commit(ctx)
	h.forms.Release(formID)
}
