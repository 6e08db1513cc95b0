package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"path"

	appContext "github.com/alphabatem/common/context"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

const (
	MEDIA_SVC = "media_svc"

	MaxProductImageSize = 5 * 1024 * 1024
	ThumbnailWidth      = 600
)

// ProductImageStore records the uploaded image addresses on the product.
type ProductImageStore interface {
	SetProductImages(ctx context.Context, productID, imageURL, thumbnailURL string) error
}

type MediaService struct {
	appContext.DefaultService
	store    ObjectStore
	products ProductImageStore
}

func NewMediaService(store ObjectStore, products ProductImageStore) *MediaService {
	return &MediaService{store: store, products: products}
}

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Start() error {
	svc.store = svc.Service(MINIO_SVC).(*MinIOService)
	svc.products = svc.Service(CATALOG_SVC).(*CatalogService)
	return nil
}

var imageFormats = map[string]struct {
	format imaging.Format
	ext    string
}{
	"image/jpeg": {imaging.JPEG, ".jpg"},
	"image/png":  {imaging.PNG, ".png"},
}

// UploadProductImage stores the original and a ThumbnailWidth-wide copy, then points
// the product at both. Only JPEG and PNG up to MaxProductImageSize are accepted; the
// format is sniffed from the content, not the file name.
func (svc *MediaService) UploadProductImage(ctx context.Context, productID string, r io.Reader, size int64) (*dto.ProductImageResponse, error) {
	if size > MaxProductImageSize {
		return nil, shared.NewBadRequestError(nil, "Image file too large. Maximum size: 5MB")
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxProductImageSize+1))
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Failed to read uploaded file")
	}
	if len(data) > MaxProductImageSize {
		return nil, shared.NewBadRequestError(nil, "Image file too large. Maximum size: 5MB")
	}

	contentType := http.DetectContentType(data)
	kind, ok := imageFormats[contentType]
	if !ok {
		return nil, shared.NewBadRequestError(nil, "Invalid image file format. Supported: JPG, PNG")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Image could not be decoded")
	}

	thumb, err := encodeThumbnail(img, kind.format)
	if err != nil {
		return nil, shared.NewInternalError(err)
	}

	id, _ := uuid.NewV7()
	base := path.Join("products", productID, id.String())
	originalName := base + kind.ext
	thumbName := base + "_thumb" + kind.ext

	if err := svc.store.UploadFile(ctx, originalName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, shared.NewBadGatewayError(err, "Failed to upload file to storage")
	}
	if err := svc.store.UploadFile(ctx, thumbName, bytes.NewReader(thumb), int64(len(thumb)), contentType); err != nil {
		svc.cleanup(ctx, originalName)
		return nil, shared.NewBadGatewayError(err, "Failed to upload file to storage")
	}

	resp := &dto.ProductImageResponse{
		ProductID:    productID,
		ImageURL:     svc.store.FileURL(originalName),
		ThumbnailURL: svc.store.FileURL(thumbName),
		FileSize:     int64(len(data)),
		Width:        img.Bounds().Dx(),
		Height:       img.Bounds().Dy(),
	}

	if err := svc.products.SetProductImages(ctx, productID, resp.ImageURL, resp.ThumbnailURL); err != nil {
		svc.cleanup(ctx, originalName, thumbName)
		return nil, err
	}

	log.WithFields(log.Fields{"product_id": productID, "object": originalName}).Info("Product image uploaded")
	return resp, nil
}

func encodeThumbnail(img image.Image, format imaging.Format) ([]byte, error) {
	thumb := img
	if img.Bounds().Dx() > ThumbnailWidth {
		thumb = imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func (svc *MediaService) cleanup(ctx context.Context, objects ...string) {
	for _, name := range objects {
		if err := svc.store.DeleteFile(ctx, name); err != nil {
			log.WithError(err).WithField("object", name).Warn("Failed to remove orphaned upload")
		}
	}
}
