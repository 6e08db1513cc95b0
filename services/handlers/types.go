package handlers

import (
	"context"
	"io"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/model"
)

type CartServiceInterface interface {
	SyncSnapshot(ctx context.Context, req dto.CartSyncRequest, userID string) dto.SnapshotResult
	MarkConverted(ctx context.Context, sessionID string) dto.SnapshotResult
}

type ReminderSweeper interface {
	RunReminderSweep(ctx context.Context) (dto.SweepSummary, error)
}

type CatalogServiceInterface interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, slug string) (*model.Product, error)
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error)
	UpdateStock(ctx context.Context, productID string, req dto.UpdateStockRequest) (*model.Product, error)
}

type AdminAuthInterface interface {
	AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
}

type MediaServiceInterface interface {
	UploadProductImage(ctx context.Context, productID string, r io.Reader, size int64) (*dto.ProductImageResponse, error)
}

type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, email, source string) (*dto.NewsletterResponse, error)
}

type ContactServiceInterface interface {
	Submit(ctx context.Context, req dto.ContactRequest) error
}
