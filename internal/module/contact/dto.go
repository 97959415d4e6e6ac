package contact

// CreateRequest represents a new storefront contact-form submission.
type CreateRequest struct {
	ContactName string `json:"contactName" binding:"required,min=1,max=200"`
	Email       string `json:"email" binding:"required,email"`
	Subject     string `json:"subject" binding:"required,min=1,max=200"`
	Message     string `json:"message" binding:"required,min=1,max=5000"`
}

// ReplyRequest represents the operator's reply to a contact submission.
type ReplyRequest struct {
	Reply string `json:"reply" binding:"required,min=1,max=5000"`
}
