package customer

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/pkg"
)

// CustomerHandler handles REST API requests for the customer resource.
type CustomerHandler struct {
	svc domain.CustomerService
}

// NewHandler creates a CustomerHandler with the given service.
func NewHandler(svc domain.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// List handles GET /api/v1/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListCustomers(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Get handles GET /api/v1/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.svc.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, customer)
}

// Update handles PUT /api/v1/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	var req UpdateCustomerRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	err := h.svc.UpdateCustomer(c.Request.Context(), c.Param("id"), domain.CustomerInput{
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// UpdateStatus handles PATCH /api/v1/customers/:id/status.
func (h *CustomerHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	if err := h.svc.UpdateCustomerStatus(c.Request.Context(), c.Param("id"), *req.Checked); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Delete handles DELETE /api/v1/customers/:id. The body must carry the
// customer's retyped username.
func (h *CustomerHandler) Delete(c *gin.Context) {
	var req DeleteCustomerRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	if err := h.svc.DeleteCustomer(c.Request.Context(), c.Param("id"), req.Confirm); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
