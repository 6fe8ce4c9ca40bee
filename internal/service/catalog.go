package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/model"
)

// allowedImageExtensions is the upload allow-list for product images.
var allowedImageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// ImageUpload is an uploaded product image.
type ImageUpload struct {
	Filename string
	Data     io.Reader
}

// AddProductInput carries new-product form data.
type AddProductInput struct {
	Title      string
	PriceCents int64
	ImageURL   string
	Image      *ImageUpload
}

// Catalog manages products and their images.
type Catalog struct {
	products model.ProductStore
	storage  model.Storage
	logger   *logger.Logger
}

func NewCatalog(products model.ProductStore, storage model.Storage, logger *logger.Logger) *Catalog {
	return &Catalog{
		products: products,
		storage:  storage,
		logger:   logger,
	}
}

// AddProduct creates a catalog product. When an image is supplied its
// extension must be on the allow-list; the file is stored under a generated
// unique name. An image with a rejected extension is skipped, not an error.
func (c *Catalog) AddProduct(ctx context.Context, input AddProductInput) (model.Product, error) {
	var imageFile string
	if input.Image != nil {
		ext := strings.ToLower(extension(input.Image.Filename))
		if _, ok := allowedImageExtensions[ext]; ok {
			imageFile = fmt.Sprintf("%s.%s", uuid.NewString(), ext)
			if err := c.storage.Upload(ctx, imageFile, input.Image.Data); err != nil {
				return model.Product{}, fmt.Errorf("failed to store product image: %w", err)
			}
		} else {
			c.logger.Info("Catalog service: rejected image extension",
				"filename", input.Image.Filename)
		}
	}

	product, err := c.products.Create(ctx, model.Product{
		ID:         uuid.New(),
		Title:      input.Title,
		PriceCents: input.PriceCents,
		ImageURL:   input.ImageURL,
		ImageFile:  imageFile,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	c.logger.Info("Catalog service: product added",
		"product_id", product.ID,
		"title", product.Title)

	return product, nil
}

func extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return filename[idx+1:]
}

// List returns non-deleted products matching the filter.
func (c *Catalog) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return c.products.List(ctx, filter)
}

// Get returns a single non-deleted product.
func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return c.products.GetByID(ctx, id)
}

// Delete soft-deletes a product; subsequent catalog reads skip it.
func (c *Catalog) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.products.SoftDelete(ctx, id); err != nil {
		return err
	}

	c.logger.Info("Catalog service: product deleted", "product_id", id)

	return nil
}

// Image streams a stored product image by filename.
func (c *Catalog) Image(ctx context.Context, filename string) (io.ReadCloser, error) {
	return c.storage.Download(ctx, filename)
}
