package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tokodigital_backend/internal/middleware"
	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/subscription"
)

// GetStoreAnalytics mağaza panosu özet sayıları. Detaylı kırılım
// advancedAnalytics feature'ına bağlıdır.
func GetStoreAnalytics(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)
	sub := middleware.SubscriptionFromCtx(c)

	db := database.GetDB()

	var productCount, orderCount, chatCount int64
	db.Model(&model.Product{}).Where("store_id = ?", store.ID).Count(&productCount)
	db.Model(&model.Order{}).Where("store_id = ?", store.ID).Count(&orderCount)
	db.Model(&model.Chat{}).Where("store_id = ?", store.ID).Count(&chatCount)

	var revenue float64
	db.Model(&model.Order{}).
		Where("store_id = ? AND status = ?", store.ID, model.OrderCompleted).
		Select("COALESCE(SUM((pricing->>'total')::numeric), 0)").
		Scan(&revenue)

	stats := fiber.Map{
		"revenue":   revenue,
		"orders":    orderCount,
		"products":  productCount,
		"customers": chatCount,
	}

	if sub != nil && sub.CanAccessFeature(subscription.AdvancedAnalytics) {
		var pendingOrders, completedOrders int64
		db.Model(&model.Order{}).
			Where("store_id = ? AND status = ?", store.ID, model.OrderPending).
			Count(&pendingOrders)
		db.Model(&model.Order{}).
			Where("store_id = ? AND status = ?", store.ID, model.OrderCompleted).
			Count(&completedOrders)

		var monthlyOrders int64
		monthStart := time.Now().AddDate(0, -1, 0)
		db.Model(&model.Order{}).
			Where("store_id = ? AND created_at > ?", store.ID, monthStart).
			Count(&monthlyOrders)

		var totalViews int64
		db.Model(&model.Product{}).Where("store_id = ?", store.ID).
			Select("COALESCE(SUM(views), 0)").Scan(&totalViews)

		var topProducts []model.Product
		db.Where("store_id = ?", store.ID).
			Order("sold DESC").Limit(5).Find(&topProducts)

		stats["advanced"] = fiber.Map{
			"pending_orders":   pendingOrders,
			"completed_orders": completedOrders,
			"monthly_orders":   monthlyOrders,
			"total_views":      totalViews,
			"top_products":     topProducts,
		}
	}

	return c.JSON(fiber.Map{
		"data": stats,
	})
}
