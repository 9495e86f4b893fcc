package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/utils/jwt"
)

// Hata kodları: hepsi istemci açısından terminaldir, retry edilmez
const (
	CodeAuthRequired        = "AUTH_REQUIRED"
	CodeAccountDisabled     = "ACCOUNT_DISABLED"
	CodeTrialExpired        = "TRIAL_EXPIRED"
	CodeSubscriptionExpired = "SUBSCRIPTION_EXPIRED"
	CodeForbidden           = "FORBIDDEN"
	CodeFeatureLocked       = "FEATURE_LOCKED"
	CodeRateLimited         = "RATE_LIMITED"
)

// Locals anahtarları
const (
	LocalUser         = "user"
	LocalAccount      = "account"
	LocalSubscription = "subscription"
	LocalStore        = "store"
)

func errAuthRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Not authorized to access this route",
		"code":  CodeAuthRequired,
	})
}

// extractToken Authorization header'ından, yoksa cookie'den token okur
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Cookies("token")
}

// Protect korumalı route'ların kimlik ve abonelik kapısıdır.
//
// Sıra: token -> claims -> hesap -> abonelik -> trial kontrolü -> statü
// kontrolü. Eksik ve geçersiz token aynı cevabı alır, hangisi olduğu
// dışarı sızdırılmaz.
//
// Trial süresi dolmuşsa statü burada expired'a yazılır; bu, bir okuma
// yolunun yazma yaptığı tek yerdir ve statüyü otomatik değiştiren tek
// geçiştir. Yazma koşullu update ile yapılır, yarışan istekler güvenlidir.
// Yazma hatası isteği düşürür (fail closed); bayat statü bir sonraki
// istekte tekrar denenir.
func Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return errAuthRequired(c)
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			return errAuthRequired(c)
		}

		var user model.User
		if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
			return errAuthRequired(c)
		}

		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Your account has been deactivated",
				"code":  CodeAccountDisabled,
			})
		}

		c.Locals(LocalUser, claims)
		c.Locals(LocalAccount, &user)

		// Abonelik bazı route'lar için zorunlu değil, yoksa devam
		var sub model.Subscription
		err = database.GetDB().Where("user_id = ?", user.ID).First(&sub).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Next()
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not load subscription",
			})
		}

		if sub.IsTrialExpired(time.Now()) {
			if err := model.ExpireTrial(database.GetDB(), &sub); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Could not update subscription status",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Your free trial has expired. Please subscribe to continue.",
				"code":  CodeTrialExpired,
			})
		}

		if !sub.IsUsable() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Your subscription has expired. Please renew to continue.",
				"code":  CodeSubscriptionExpired,
			})
		}

		c.Locals(LocalSubscription, &sub)
		return c.Next()
	}
}

// Authorize rol üyeliği kontrolü. Route bazlı rol string karşılaştırmaları
// yerine tek parametrik kapı.
func Authorize(roles ...model.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := c.Locals(LocalAccount).(*model.User)
		if !ok {
			return errAuthRequired(c)
		}

		for _, role := range roles {
			if account.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "User role " + string(account.Role) + " is not authorized to access this route",
			"code":  CodeForbidden,
		})
	}
}

// AccountFromCtx Protect sonrası resolved hesabı döner
func AccountFromCtx(c *fiber.Ctx) *model.User {
	account, _ := c.Locals(LocalAccount).(*model.User)
	return account
}

// SubscriptionFromCtx Protect sonrası resolved aboneliği döner, olmayabilir
func SubscriptionFromCtx(c *fiber.Ctx) *model.Subscription {
	sub, _ := c.Locals(LocalSubscription).(*model.Subscription)
	return sub
}

// StoreFromCtx CheckStoreOwnership sonrası resolved mağazayı döner
func StoreFromCtx(c *fiber.Ctx) *model.Store {
	store, _ := c.Locals(LocalStore).(*model.Store)
	return store
}
