package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStoreOwner UserRole = "store_owner"
	RoleAdmin      UserRole = "admin"
)

type User struct {
	gorm.Model
	Name     string   `json:"name" gorm:"not null"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null"`
	Password string   `json:"-" gorm:"not null"`
	Phone    string   `json:"phone"`
	Role     UserRole `json:"role" gorm:"default:'store_owner'"`

	// Sistem bilgileri
	IsActive        bool       `json:"is_active" gorm:"default:true"`
	IsEmailVerified bool       `json:"is_email_verified" gorm:"default:false"`
	LastLogin       *time.Time `json:"last_login"`

	// Tek kullanımlık token'lar (sha256 hash olarak saklanır)
	EmailVerificationToken  string     `json:"-"`
	EmailVerificationExpire *time.Time `json:"-"`
	ResetPasswordToken      string     `json:"-"`
	ResetPasswordExpire     *time.Time `json:"-"`

	StoreID        *uint `json:"store_id"`
	SubscriptionID *uint `json:"subscription_id"`

	// İlişkiler
	Store        *Store        `json:"-" gorm:"foreignKey:StoreID"`
	Subscription *Subscription `json:"-" gorm:"foreignKey:SubscriptionID"`
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":       u.ID,
		"name":     u.Name,
		"email":    u.Email,
		"phone":    u.Phone,
		"role":     u.Role,
		"store_id": u.StoreID,
	}
}

// HashToken tek kullanımlık token'ların saklanan halini üretir
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewOneTimeToken rastgele token ve saklanacak hash'ini döner
func NewOneTimeToken() (token string, hashed string, err error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(raw)
	return token, HashToken(token), nil
}

// SetEmailVerificationToken 24 saat geçerli doğrulama token'ı üretir
func (u *User) SetEmailVerificationToken() (string, error) {
	token, hashed, err := NewOneTimeToken()
	if err != nil {
		return "", err
	}
	expire := time.Now().Add(24 * time.Hour)
	u.EmailVerificationToken = hashed
	u.EmailVerificationExpire = &expire
	return token, nil
}

// SetResetPasswordToken 10 dakika geçerli şifre sıfırlama token'ı üretir
func (u *User) SetResetPasswordToken() (string, error) {
	token, hashed, err := NewOneTimeToken()
	if err != nil {
		return "", err
	}
	expire := time.Now().Add(10 * time.Minute)
	u.ResetPasswordToken = hashed
	u.ResetPasswordExpire = &expire
	return token, nil
}
