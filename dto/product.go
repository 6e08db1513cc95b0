package dto

import "errors"

var ErrStockChangeAmbiguous = errors.New("provide exactly one of quantity or delta")

type CreateProductRequest struct {
	Slug        string  `json:"slug" validate:"required,max=120,slug" example:"stoneware-mug"`
	Title       string  `json:"title" validate:"required,max=200" example:"Stoneware mug"`
	Description string  `json:"description" validate:"max=4000" example:"Wheel-thrown, 350ml."`
	Price       float64 `json:"price" validate:"gte=0" example:"24.5"`
	Currency    string  `json:"currency" validate:"omitempty,iso4217" example:"EUR"`
	Stock       int     `json:"stock" validate:"gte=0" example:"12"`
}

func (r CreateProductRequest) Validate() error {
	return GetValidator().Struct(r)
}

// UpdateStockRequest sets the stock to Quantity, or shifts it by Delta.
type UpdateStockRequest struct {
	Quantity *int `json:"quantity,omitempty" validate:"omitempty,gte=0" example:"10"`
	Delta    *int `json:"delta,omitempty" example:"-1"`
}

func (r UpdateStockRequest) Validate() error {
	if (r.Quantity == nil) == (r.Delta == nil) {
		return ErrStockChangeAmbiguous
	}
	return GetValidator().Struct(r)
}

type ProductImageResponse struct {
	ProductID    string `json:"product_id"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	FileSize     int64  `json:"file_size"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}
