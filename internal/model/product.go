package model

import "time"

// Product is a catalog entry. Price is in the smallest currency unit.
type Product struct {
	ID               string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name             string         `json:"name" gorm:"type:varchar(255);not null"`
	Description      string         `json:"description" gorm:"type:text;not null"`
	ShortDescription string         `json:"short_description" gorm:"type:varchar(255);not null"`
	Price            int64          `json:"price" gorm:"not null"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	Images           []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductImage is one image attached to a product. The URL points at an
// externally managed object store; this service never touches the bytes.
type ProductImage struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);index;not null"`
	ImageURL  string    `json:"image_url" gorm:"type:varchar(512);not null"`
	CreatedAt time.Time `json:"created_at"`
}

// AddProductRequest creates a product together with its initial images.
type AddProductRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description" binding:"required"`
	ShortDescription string   `json:"short_description" binding:"required"`
	Price            int64    `json:"price" binding:"required,gt=0"`
	ImageURLs        []string `json:"image_urls" binding:"required,min=1"`
}

// UpdateProductRequest updates product fields and optionally appends images.
type UpdateProductRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description" binding:"required"`
	ShortDescription string   `json:"short_description" binding:"required"`
	Price            int64    `json:"price" binding:"required,gt=0"`
	NewImageURLs     []string `json:"new_image_urls"`
}

// ProductListResponse is a paged product listing.
type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
