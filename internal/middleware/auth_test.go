package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/subscription"
	"tokodigital_backend/pkg/utils/jwt"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Store{}, &model.Product{}, &model.Subscription{}))

	database.DB = db
	t.Cleanup(func() { database.DB = nil })

	return db
}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Protect(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func createActiveUser(t *testing.T, db *gorm.DB, email string) (model.User, string) {
	t.Helper()

	user := model.User{
		Name:     "Budi",
		Email:    email,
		Password: "irrelevant",
		Role:     model.RoleStoreOwner,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	return user, token
}

func doRequest(t *testing.T, app *fiber.App, token string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest("GET", "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, string(body)
}

func TestProtectMissingAndInvalidTokenLookIdentical(t *testing.T) {
	setupAuthDB(t)
	app := protectedApp()

	missingResp, missingBody := doRequest(t, app, "")
	invalidResp, invalidBody := doRequest(t, app, "not-a-token")

	assert.Equal(t, fiber.StatusUnauthorized, missingResp.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, invalidResp.StatusCode)
	assert.Contains(t, missingBody, CodeAuthRequired)

	// Eksik ve geçersiz token dışarıdan ayırt edilemez
	assert.Equal(t, missingBody, invalidBody)
}

func TestProtectDeactivatedAccount(t *testing.T) {
	db := setupAuthDB(t)
	app := protectedApp()

	user, token := createActiveUser(t, db, "pasif@example.com")
	require.NoError(t, db.Model(&user).Update("is_active", false).Error)

	resp, body := doRequest(t, app, token)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, CodeAccountDisabled)
}

func TestProtectExpiredTrialPersistsTransition(t *testing.T) {
	db := setupAuthDB(t)
	app := protectedApp()

	user, token := createActiveUser(t, db, "trial@example.com")

	// Trial bitişi 1ms önce geçmiş
	sub := model.NewTrialSubscription(user.ID, 1, time.Now().Add(-model.TrialPeriod-time.Millisecond))
	require.NoError(t, db.Create(&sub).Error)

	resp, body := doRequest(t, app, token)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, CodeTrialExpired)

	// Geçiş kalıcı: statü DB'de expired'a yazıldı
	var stored model.Subscription
	require.NoError(t, db.First(&stored, sub.ID).Error)
	assert.Equal(t, model.StatusExpired, stored.Status)
}

func TestProtectExpiredSubscriptionStatus(t *testing.T) {
	db := setupAuthDB(t)
	app := protectedApp()

	user, token := createActiveUser(t, db, "expired@example.com")

	sub := model.NewTrialSubscription(user.ID, 1, time.Now())
	sub.Status = model.StatusExpired
	require.NoError(t, db.Create(&sub).Error)

	resp, body := doRequest(t, app, token)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, CodeSubscriptionExpired)
}

func TestProtectUsableTrialPassesThrough(t *testing.T) {
	db := setupAuthDB(t)

	user, token := createActiveUser(t, db, "aktif@example.com")

	sub := model.NewTrialSubscription(user.ID, 1, time.Now())
	require.NoError(t, db.Create(&sub).Error)

	app := fiber.New()
	app.Get("/me", Protect(), func(c *fiber.Ctx) error {
		// Guard geçen istekte abonelik bağlama takılı olmalı
		if SubscriptionFromCtx(c) == nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, _ := doRequest(t, app, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func featureApp(sub *model.Subscription, feature subscription.Feature) *fiber.App {
	app := fiber.New()
	app.Get("/me", func(c *fiber.Ctx) error {
		if sub != nil {
			c.Locals(LocalSubscription, sub)
		}
		return c.Next()
	}, CheckSubscriptionFeature(feature), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestCheckSubscriptionFeature(t *testing.T) {
	activeSub := func(plan subscription.PlanType) *model.Subscription {
		return &model.Subscription{
			Status:   model.StatusActive,
			Plan:     plan,
			Features: datatypes.NewJSONType(subscription.Plans[plan].Features),
		}
	}

	tests := []struct {
		name       string
		sub        *model.Subscription
		feature    subscription.Feature
		wantStatus int
	}{
		{
			name:       "no subscription in context",
			sub:        nil,
			feature:    subscription.CustomDomain,
			wantStatus: fiber.StatusForbidden,
		},
		{
			name:       "feature disabled on plan",
			sub:        activeSub(subscription.FreePlan),
			feature:    subscription.CustomDomain,
			wantStatus: fiber.StatusForbidden,
		},
		{
			name:       "feature enabled on plan",
			sub:        activeSub(subscription.ProfessionalPlan),
			feature:    subscription.CustomDomain,
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "unlimited limit counts as enabled",
			sub:        activeSub(subscription.EnterprisePlan),
			feature:    subscription.ProductLimit,
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, featureApp(tt.sub, tt.feature), "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == fiber.StatusForbidden {
				assert.Contains(t, body, CodeFeatureLocked)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	authorizeApp := func(account *model.User, roles ...model.UserRole) *fiber.App {
		app := fiber.New()
		app.Get("/me", func(c *fiber.Ctx) error {
			if account != nil {
				c.Locals(LocalAccount, account)
			}
			return c.Next()
		}, Authorize(roles...), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	admin := &model.User{Role: model.RoleAdmin}
	owner := &model.User{Role: model.RoleStoreOwner}

	resp, _ := doRequest(t, authorizeApp(admin, model.RoleAdmin), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, authorizeApp(owner, model.RoleAdmin), "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, CodeForbidden)

	// Hesap bağlanmamışsa kimlik hatası
	resp, _ = doRequest(t, authorizeApp(nil, model.RoleAdmin), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
