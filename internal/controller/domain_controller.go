package controller

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tokodigital_backend/internal/middleware"
	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
)

var domainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

// CheckDomainAvailability custom domain başka mağazada kayıtlı mı bakar
func CheckDomainAvailability(c *fiber.Ctx) error {
	domain := strings.ToLower(c.Params("domain"))

	if !domainPattern.MatchString(domain) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid domain name",
		})
	}

	var count int64
	if err := database.GetDB().Model(&model.Store{}).
		Where("custom_domain = ?", domain).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not check domain",
		})
	}

	return c.JSON(fiber.Map{
		"available": count == 0,
	})
}

type ConnectDomainInput struct {
	Domain string `json:"domain" validate:"required"`
}

// ConnectCustomDomain mağazaya custom domain bağlar; customDomain
// feature'ı route üzerinde kontrol edilir
func ConnectCustomDomain(c *fiber.Ctx) error {
	input := new(ConnectDomainInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	domain := strings.ToLower(input.Domain)
	if !domainPattern.MatchString(domain) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid domain name",
		})
	}

	var count int64
	database.GetDB().Model(&model.Store{}).Where("custom_domain = ?", domain).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Domain is already in use",
		})
	}

	store := middleware.StoreFromCtx(c)
	if err := database.GetDB().Model(store).Update("custom_domain", domain).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not connect domain",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Domain connected successfully",
	})
}
