package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/babo072/my-shopping-mall/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService manages the catalog. Reads are public; every write is
// admin-gated at the route level.
type ProductService interface {
	List(ctx context.Context, page, limit int) (*model.ProductListResponse, error)
	Get(ctx context.Context, productID string) (*model.Product, error)
	Add(ctx context.Context, req *model.AddProductRequest) (*model.Product, error)
	Update(ctx context.Context, productID string, req *model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, productID string) error
	DeleteImage(ctx context.Context, productID, imageID string) error
}

type productServiceImpl struct {
	db *gorm.DB
}

// NewProductService creates a product service over db.
func NewProductService(db *gorm.DB) ProductService {
	return &productServiceImpl{db: db}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (s *productServiceImpl) List(ctx context.Context, page, limit int) (*model.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	var products []model.Product
	err := s.db.WithContext(ctx).
		Preload("Images").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &model.ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

func (s *productServiceImpl) Get(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Preload("Images").Where("id = ?", productID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	return &product, nil
}

// Add creates the product row and its image rows in one transaction.
func (s *productServiceImpl) Add(ctx context.Context, req *model.AddProductRequest) (*model.Product, error) {
	if len(req.ImageURLs) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", ErrInvalidRequest)
	}

	product := &model.Product{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		ShortDescription: strings.TrimSpace(req.ShortDescription),
		Price:            req.Price,
	}
	images := make([]model.ProductImage, 0, len(req.ImageURLs))
	for _, url := range req.ImageURLs {
		images = append(images, model.ProductImage{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			ImageURL:  url,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}
	product.Images = images
	return product, nil
}

// Update rewrites the product fields and appends any new image URLs.
func (s *productServiceImpl) Update(ctx context.Context, productID string, req *model.UpdateProductRequest) (*model.Product, error) {
	updates := map[string]any{
		"name":              strings.TrimSpace(req.Name),
		"description":       req.Description,
		"short_description": strings.TrimSpace(req.ShortDescription),
		"price":             req.Price,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Product{}).Where("id = ?", productID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if len(req.NewImageURLs) == 0 {
			return nil
		}
		images := make([]model.ProductImage, 0, len(req.NewImageURLs))
		for _, url := range req.NewImageURLs {
			images = append(images, model.ProductImage{
				ID:        uuid.NewString(),
				ProductID: productID,
				ImageURL:  url,
			})
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.Get(ctx, productID)
}

func (s *productServiceImpl) Delete(ctx context.Context, productID string) error {
	res := s.db.WithContext(ctx).Where("id = ?", productID).Delete(&model.Product{})
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *productServiceImpl) DeleteImage(ctx context.Context, productID, imageID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&model.ProductImage{})
	if res.Error != nil {
		return fmt.Errorf("delete product image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
