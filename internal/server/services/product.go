package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lotfi029/FreelancerAssignment/internal/apperrors"
	"github.com/lotfi029/FreelancerAssignment/internal/logging"
	"github.com/lotfi029/FreelancerAssignment/internal/server/models"
	"github.com/lotfi029/FreelancerAssignment/internal/server/repositories/repomanager"
)

// ProductInput carries the caller-editable product fields.
type ProductInput struct {
	Name            string
	Category        string
	Price           float64
	MinimumQuantity int
	Discount        float64
}

// ProductView is a product as returned to clients. ImageURL is a short-lived
// presigned download URL, empty when the product has no image.
type ProductView struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	ProductCode     string     `json:"productCode"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	Price           float64    `json:"price"`
	MinimumQuantity int        `json:"minimumQuantity"`
	Discount        float64    `json:"discount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// ProductService implements the product catalog. Mutations are creator-only
// apart from AddImage; reads exclude soft-deleted rows at the repository.
type ProductService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	images ImageStore
	logger logging.Logger
}

func NewProductService(db *sql.DB, repos repomanager.RepositoryManager, images ImageStore, logger logging.Logger) *ProductService {
	return &ProductService{db: db, repos: repos, images: images, logger: logger}
}

// Add creates a product owned by userID. The product code is server
// generated. A nil image is allowed; when present it is uploaded first so a
// rejected file never leaves an imageless row behind.
func (s *ProductService) Add(ctx context.Context, userID string, input *ProductInput, image *ImageUpload) (*ProductView, error) {
	view, err := s.add(ctx, userID, input, image)
	if err != nil {
		return nil, s.fail(ctx, "AddProductError", "error adding product", err)
	}
	return view, nil
}

func (s *ProductService) add(ctx context.Context, userID string, input *ProductInput, image *ImageUpload) (*ProductView, error) {
	code, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	var key string
	if image != nil {
		key, err = s.images.Upload(ctx, image)
		if err != nil {
			return nil, err
		}
	}

	product, err := s.repos.Products(s.db).Create(ctx, &models.Product{
		Name:            input.Name,
		Category:        input.Category,
		ProductCode:     code.String(),
		Image:           key,
		Price:           input.Price,
		MinimumQuantity: input.MinimumQuantity,
		Discount:        input.Discount,
		CreatedBy:       userID,
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, product)
}

// Update replaces the mutable fields of the product. Only the creator may
// update; anyone else gets UnauthorizedAccess even when the product exists.
func (s *ProductService) Update(ctx context.Context, userID, productID string, input *ProductInput) (*ProductView, error) {
	view, err := s.update(ctx, userID, productID, input)
	if err != nil {
		return nil, s.fail(ctx, "UpdateProductError", "error updating product", err)
	}
	return view, nil
}

func (s *ProductService) update(ctx context.Context, userID, productID string, input *ProductInput) (*ProductView, error) {
	repo := s.repos.Products(s.db)

	product, err := s.findOwned(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Category = input.Category
	product.Price = input.Price
	product.MinimumQuantity = input.MinimumQuantity
	product.Discount = input.Discount

	if err := repo.Update(ctx, product); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return s.view(ctx, product)
}

// Delete soft-deletes the product; creator-only.
func (s *ProductService) Delete(ctx context.Context, userID, productID string) error {
	if err := s.delete(ctx, userID, productID); err != nil {
		return s.fail(ctx, "DeleteProductError", "error deleting product", err)
	}
	return nil
}

func (s *ProductService) delete(ctx context.Context, userID, productID string) error {
	if _, err := s.findOwned(ctx, userID, productID); err != nil {
		return err
	}
	err := s.repos.Products(s.db).SoftDelete(ctx, productID, time.Now())
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrProductNotFound
	}
	return err
}

// AddImage uploads an image and stores its object key on the product. The
// original intentionally skips the ownership check here.
func (s *ProductService) AddImage(ctx context.Context, productID string, image *ImageUpload) (*ProductView, error) {
	view, err := s.addImage(ctx, productID, image)
	if err != nil {
		return nil, s.fail(ctx, "AddImageError", "error adding product image", err)
	}
	return view, nil
}

func (s *ProductService) addImage(ctx context.Context, productID string, image *ImageUpload) (*ProductView, error) {
	repo := s.repos.Products(s.db)

	product, err := repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	key, err := s.images.Upload(ctx, image)
	if err != nil {
		return nil, err
	}

	product.Image = key
	if err := repo.Update(ctx, product); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return s.view(ctx, product)
}

// GetByID returns a single product.
func (s *ProductService) GetByID(ctx context.Context, productID string) (*ProductView, error) {
	product, err := s.repos.Products(s.db).FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = apperrors.ErrProductNotFound
		}
		return nil, s.fail(ctx, "GetProductsError", "error getting product", err)
	}
	return s.viewOrFail(ctx, product, "GetProductsError", "error getting product")
}

// GetAll returns every non-deleted product, newest first.
func (s *ProductService) GetAll(ctx context.Context) ([]*ProductView, error) {
	products, err := s.repos.Products(s.db).SelectAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, "GetProductsError", "error getting products", err)
	}
	return s.views(ctx, products, "GetProductsError", "error getting products")
}

// GetByCategory returns the non-deleted products in the category, newest
// first. An unknown category yields an empty list, not an error.
func (s *ProductService) GetByCategory(ctx context.Context, category string) ([]*ProductView, error) {
	products, err := s.repos.Products(s.db).SelectByCategory(ctx, category)
	if err != nil {
		return nil, s.fail(ctx, "GetProductsError", "error getting products", err)
	}
	return s.views(ctx, products, "GetProductsError", "error getting products")
}

// Categories returns the distinct categories of non-deleted products.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repos.Products(s.db).Categories(ctx)
	if err != nil {
		return nil, s.fail(ctx, "GetCategoriesError", "error getting categories", err)
	}
	return categories, nil
}

// ImageURL returns a presigned download URL for the product's image, or
// ProductNotFound when the product is absent or has no image.
func (s *ProductService) ImageURL(ctx context.Context, productID string) (string, error) {
	url, err := s.imageURL(ctx, productID)
	if err != nil {
		return "", s.fail(ctx, "GetProductsError", "error getting product image", err)
	}
	return url, nil
}

func (s *ProductService) imageURL(ctx context.Context, productID string) (string, error) {
	product, err := s.repos.Products(s.db).FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrProductNotFound
		}
		return "", err
	}
	if product.Image == "" {
		return "", apperrors.ErrProductNotFound
	}
	return s.images.PresignedGetURL(ctx, product.Image)
}

// findOwned loads the product and enforces the creator-only rule.
func (s *ProductService) findOwned(ctx context.Context, userID, productID string) (*models.Product, error) {
	product, err := s.repos.Products(s.db).FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	if product.CreatedBy != userID {
		return nil, apperrors.ErrUnauthorizedAccess
	}
	return product, nil
}

func (s *ProductService) view(ctx context.Context, product *models.Product) (*ProductView, error) {
	view := &ProductView{
		ID:              product.ID,
		Name:            product.Name,
		Category:        product.Category,
		ProductCode:     product.ProductCode,
		Price:           product.Price,
		MinimumQuantity: product.MinimumQuantity,
		Discount:        product.Discount,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	if product.Image != "" {
		url, err := s.images.PresignedGetURL(ctx, product.Image)
		if err != nil {
			return nil, err
		}
		view.ImageURL = url
	}
	return view, nil
}

func (s *ProductService) viewOrFail(ctx context.Context, product *models.Product, code, msg string) (*ProductView, error) {
	view, err := s.view(ctx, product)
	if err != nil {
		return nil, s.fail(ctx, code, msg, err)
	}
	return view, nil
}

func (s *ProductService) views(ctx context.Context, products []*models.Product, code, msg string) ([]*ProductView, error) {
	result := make([]*ProductView, 0, len(products))
	for _, product := range products {
		view, err := s.view(ctx, product)
		if err != nil {
			return nil, s.fail(ctx, code, msg, err)
		}
		result = append(result, view)
	}
	return result, nil
}

func (s *ProductService) fail(ctx context.Context, code, msg string, err error) error {
	return convertError(ctx, s.logger, code, msg, err)
}
