package seed

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/subscription"
)

// SeedDemoData lokal geliştirme için admin hesabı ve demo mağaza oluşturur
func SeedDemoData(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing seed password: %v", err)
		return
	}

	admin := model.User{
		Name:     "Admin",
		Email:    "admin@toko-digital.com",
		Password: string(hashed),
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return
	}

	store := model.Store{
		OwnerID:        admin.ID,
		Name:           "Demo Store",
		Subdomain:      "demo",
		WhatsAppNumber: "6281234567890",
		Email:          admin.Email,
		Theme:          datatypes.NewJSONType(model.DefaultTheme()),
	}
	if err := db.Create(&store).Error; err != nil {
		log.Printf("Error creating demo store: %v", err)
		return
	}

	sub := model.NewTrialSubscription(admin.ID, store.ID, time.Now())
	sub.Plan = subscription.EnterprisePlan
	sub.Status = model.StatusActive
	sub.Features = datatypes.NewJSONType(subscription.GetPlanDetails(subscription.EnterprisePlan).Features)
	if err := db.Create(&sub).Error; err != nil {
		log.Printf("Error creating demo subscription: %v", err)
		return
	}

	db.Model(&admin).Updates(map[string]interface{}{
		"store_id":        store.ID,
		"subscription_id": sub.ID,
	})

	log.Println("Demo data seeded successfully!")
}
