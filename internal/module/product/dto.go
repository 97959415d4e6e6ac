package product

// SaveProductRequest represents the input for creating or updating a
// product. FormID links the save to an open image form session so the
// uploaded (or pasted) image is attached and committed with the save.
type SaveProductRequest struct {
	ProductName string  `json:"productName" binding:"required,min=1,max=200"`
	Category    string  `json:"category" binding:"required,min=1,max=100"`
	Desc        string  `json:"desc" binding:"max=5000"`
	Price       float64 `json:"price" binding:"gte=0"`
	ImageLink   string  `json:"imageLink" binding:"omitempty,url"`
	FormID      string  `json:"formId" binding:"omitempty,uuid"`
}

// DeleteProductRequest represents the typed-confirmation input for a
// product delete.
type DeleteProductRequest struct {
	Confirm string `json:"confirm" binding:"required"`
}
