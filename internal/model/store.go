package model

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type SocialMedia struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Youtube   string `json:"youtube"`
}

type StoreTheme struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	FontFamily     string `json:"font_family"`
	Layout         string `json:"layout"`
}

func DefaultTheme() StoreTheme {
	return StoreTheme{
		PrimaryColor:   "#007bff",
		SecondaryColor: "#6c757d",
		FontFamily:     "Inter",
		Layout:         "grid",
	}
}

type Store struct {
	gorm.Model
	OwnerID     uint   `json:"owner_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Banner      string `json:"banner"`

	Subdomain string `json:"subdomain" gorm:"uniqueIndex;not null"`

	// NULL iken unique index çakışmaz; domain bağlanana kadar boş bırakılır
	CustomDomain *string `json:"custom_domain" gorm:"uniqueIndex"`

	WhatsAppNumber string `json:"whatsapp_number" gorm:"not null"`
	Email          string `json:"email"`
	Currency       string `json:"currency" gorm:"default:'IDR'"`

	Address     datatypes.JSONType[Address]     `json:"address"`
	SocialMedia datatypes.JSONType[SocialMedia] `json:"social_media"`
	Theme       datatypes.JSONType[StoreTheme]  `json:"theme"`

	// Depolama ve limit sayaçları (feature flag'lerden türetilir)
	StorageUsed  int64 `json:"storage_used" gorm:"default:0"`
	StorageLimit int64 `json:"storage_limit" gorm:"default:104857600"`

	MonthlyVisits int64   `json:"monthly_visits" gorm:"default:0"`
	TotalSales    int64   `json:"total_sales" gorm:"default:0"`
	TotalRevenue  float64 `json:"total_revenue" gorm:"default:0"`

	IsActive   bool `json:"is_active" gorm:"default:true"`
	IsVerified bool `json:"is_verified" gorm:"default:false"`

	// İlişkiler
	Owner    User      `json:"-" gorm:"foreignKey:OwnerID"`
	Products []Product `json:"-" gorm:"foreignKey:StoreID"`
}

// GetPublicURL custom domain varsa onu, yoksa subdomain URL'ini döner
func (s *Store) GetPublicURL(appDomain string) string {
	if s.CustomDomain != nil && *s.CustomDomain != "" {
		return fmt.Sprintf("https://%s", *s.CustomDomain)
	}
	return fmt.Sprintf("https://%s.%s", s.Subdomain, appDomain)
}

// CanUploadFile depolama limitine göre yükleme yapılabilir mi kontrol eder
func (s *Store) CanUploadFile(fileSize int64) bool {
	return s.StorageUsed+fileSize <= s.StorageLimit
}
