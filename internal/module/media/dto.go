package media

// OpenFormRequest starts an image form session around the asset currently
// stored on the entity being edited. Both fields are empty for a create
// form.
type OpenFormRequest struct {
	ImageURL      string `json:"imageUrl" binding:"omitempty,url"`
	ImagePublicID string `json:"imagePublicId"`
}

// OpenFormResponse returns the session id the browser uses for the rest
// of the flow and attaches to the entity save.
type OpenFormResponse struct {
	FormID string `json:"formId"`
}

// CropRequest finalizes the crop area in source-image pixels.
type CropRequest struct {
	X      int `json:"x" binding:"gte=0"`
	Y      int `json:"y" binding:"gte=0"`
	Width  int `json:"width" binding:"required,gt=0"`
	Height int `json:"height" binding:"required,gt=0"`
}

// LinkRequest records a pasted image URL.
type LinkRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// BoundsResponse reports the selected image's dimensions for the crop UI.
type BoundsResponse struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
