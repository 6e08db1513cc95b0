package dto

type NewsletterRequest struct {
	Email  string `json:"email" validate:"required,max=254" example:"reader@example.com"`
	Source string `json:"source,omitempty" validate:"max=50" example:"footer"`
}

func (r NewsletterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type NewsletterResponse struct {
	Subscribed bool `json:"subscribed"`
	Existing   bool `json:"existing"`
}
