package dto

type ContactRequest struct {
	Name    string `json:"name" validate:"required" example:"Ada"`
	Email   string `json:"email" validate:"required" example:"ada@example.com"`
	Phone   string `json:"phone,omitempty" example:"+44 20 7946 0000"`
	Subject string `json:"subject,omitempty" example:"Custom order"`
	Message string `json:"message" validate:"required" example:"Do you ship to Norway?"`
}

func (r ContactRequest) Validate() error {
	return GetValidator().Struct(r)
}
