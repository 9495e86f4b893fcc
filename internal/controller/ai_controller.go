package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"tokodigital_backend/internal/middleware"
	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
)

type LandingPageInput struct {
	ProductID uint `json:"product_id" validate:"required"`
}

// GenerateLandingPage aiLandingPage feature'ı arkasındaki üretim ucu.
// Şimdilik ürün verisinden statik bir şablon doldurur.
// TODO: LLM tabanlı üretim bağlanınca şablon yerine servis çağrılacak.
func GenerateLandingPage(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	input := new(LandingPageInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var product model.Product
	err := database.GetDB().
		Where("id = ? AND store_id = ?", input.ProductID, store.ID).
		First(&product).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	html := fmt.Sprintf("<h1>%s</h1><p>%s</p>", product.Name, product.Description)

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"html": html,
			"css":  "body { font-family: Inter, sans-serif; }",
		},
	})
}
