package dto

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,plausible_email" example:"admin@example.com"`
	Password string `json:"password" validate:"required,max=128" example:"correct horse battery staple"`
}

func (r AdminLoginRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AdminLoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
