package middleware

import (
	"github.com/gofiber/fiber/v2"

	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/subscription"
)

// CheckSubscriptionFeature plan feature'ı açık değilse isteği keser.
// Protect'in abonelik bağlamadığı isteklerde de kilitli sayılır.
func CheckSubscriptionFeature(feature subscription.Feature) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub := SubscriptionFromCtx(c)
		if sub == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "No active subscription found",
				"code":  CodeFeatureLocked,
			})
		}

		if !sub.CanAccessFeature(feature) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "This feature requires a higher subscription plan. Feature: " + string(feature),
				"code":  CodeFeatureLocked,
			})
		}

		return c.Next()
	}
}

// CheckProductLimit mağazadaki ürün sayısını planın productLimit değeriyle
// karşılaştırır. -1 sınırsız demektir.
func CheckProductLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub := SubscriptionFromCtx(c)
		if sub == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "No active subscription found",
				"code":  CodeFeatureLocked,
			})
		}

		store := StoreFromCtx(c)
		if store == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Store ID is required",
			})
		}

		var productCount int64
		if err := database.GetDB().Model(&model.Product{}).
			Where("store_id = ?", store.ID).Count(&productCount).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not count products",
			})
		}

		limit := sub.Features.Data().ProductLimit
		if !subscription.WithinLimit(limit, productCount) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":         "You have reached your product limit. Please upgrade your plan.",
				"code":          CodeFeatureLocked,
				"current_count": productCount,
				"max_limit":     limit,
			})
		}

		return c.Next()
	}
}
