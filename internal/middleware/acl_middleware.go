package middleware

import (
	"github.com/gofiber/fiber/v2"

	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
)

// storeIDFromRequest sırayla path parametresi, body ve query'den storeId arar
func storeIDFromRequest(c *fiber.Ctx) string {
	if id := c.Params("storeId"); id != "" {
		return id
	}

	var body struct {
		StoreID string `json:"storeId"`
	}
	if err := c.BodyParser(&body); err == nil && body.StoreID != "" {
		return body.StoreID
	}

	return c.Query("storeId")
}

// CheckStoreOwnership mağazanın sahibi ya da admin olmayan istekleri keser,
// mağazayı Locals'a bağlar
func CheckStoreOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := AccountFromCtx(c)
		if account == nil {
			return errAuthRequired(c)
		}

		storeID := storeIDFromRequest(c)
		if storeID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Store ID is required",
			})
		}

		var store model.Store
		if err := database.GetDB().First(&store, storeID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Store not found",
			})
		}

		if account.Role != model.RoleAdmin && store.OwnerID != account.ID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You are not authorized to access this store",
				"code":  CodeForbidden,
			})
		}

		c.Locals(LocalStore, &store)
		return c.Next()
	}
}
