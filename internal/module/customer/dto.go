package customer

// UpdateCustomerRequest represents the input for editing a customer
// account.
type UpdateCustomerRequest struct {
	Username    string `json:"username" binding:"required,min=1,max=100"`
	PhoneNumber string `json:"phoneNumber" binding:"max=30"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// UpdateStatusRequest toggles a customer's verified flag. A pointer
// distinguishes an explicit false from an absent field.
type UpdateStatusRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

// DeleteCustomerRequest represents the typed-confirmation input for a
// customer delete.
type DeleteCustomerRequest struct {
	Confirm string `json:"confirm" binding:"required"`
}
