package infrastructure

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/babo072/my-shopping-mall/internal/model"
	"github.com/babo072/my-shopping-mall/internal/service"

	"gorm.io/gorm"
)

// SeedDataManager bootstraps the minimum data a fresh deployment needs: one
// admin account and, for development databases, a small sample catalog.
type SeedDataManager struct {
	db             *gorm.DB
	userService    service.UserService
	productService service.ProductService
}

// NewSeedDataManager creates a seed data manager.
func NewSeedDataManager(db *gorm.DB, userService service.UserService, productService service.ProductService) *SeedDataManager {
	return &SeedDataManager{
		db:             db,
		userService:    userService,
		productService: productService,
	}
}

// SeedAll runs every bootstrap step. Each step is idempotent.
func (s *SeedDataManager) SeedAll() error {
	if err := s.setupAdminAccount(); err != nil {
		return fmt.Errorf("failed to setup admin account: %w", err)
	}
	if err := s.setupSampleProducts(); err != nil {
		return fmt.Errorf("failed to setup sample products: %w", err)
	}
	return nil
}

// setupAdminAccount creates the back-office account and promotes its
// profile to admin. Controlled by ADMIN_EMAIL / ADMIN_PASSWORD.
func (s *SeedDataManager) setupAdminAccount() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	ctx := context.Background()

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	profile, err := s.userService.Signup(ctx, &model.SignupRequest{
		Email:    email,
		Password: password,
		UserName: "Administrator",
	})
	if err != nil {
		return err
	}

	// Signup always creates a customer profile; promotion happens here,
	// outside any request path.
	err = s.db.Model(&model.Profile{}).
		Where("user_id = ?", profile.UserID).
		Update("role", model.RoleAdmin).Error
	if err != nil {
		return err
	}

	log.Printf("admin account created: %s", email)
	return nil
}

// setupSampleProducts fills an empty development catalog.
func (s *SeedDataManager) setupSampleProducts() error {
	if os.Getenv("SEED_SAMPLE_DATA") != "1" {
		return nil
	}

	var count int64
	if err := s.db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	ctx := context.Background()
	samples := []model.AddProductRequest{
		{
			Name:             "Aurora Desk Lamp",
			Description:      "Warm LED desk lamp with three brightness levels and a weighted aluminum base.",
			ShortDescription: "Warm LED desk lamp",
			Price:            42000,
			ImageURLs:        []string{"https://images.example.com/products/aurora-lamp-1.jpg"},
		},
		{
			Name:             "Drift Ceramic Mug",
			Description:      "350ml hand-glazed ceramic mug, dishwasher safe.",
			ShortDescription: "Hand-glazed ceramic mug",
			Price:            18000,
			ImageURLs:        []string{"https://images.example.com/products/drift-mug-1.jpg"},
		},
		{
			Name:             "Linen Throw Blanket",
			Description:      "Stonewashed linen throw, 130x170cm, naturally dyed.",
			ShortDescription: "Stonewashed linen throw",
			Price:            89000,
			ImageURLs: []string{
				"https://images.example.com/products/linen-throw-1.jpg",
				"https://images.example.com/products/linen-throw-2.jpg",
			},
		},
	}

	for i := range samples {
		if _, err := s.productService.Add(ctx, &samples[i]); err != nil {
			return err
		}
	}

	log.Printf("seeded %d sample products", len(samples))
	return nil
}
