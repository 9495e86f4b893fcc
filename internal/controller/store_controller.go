package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"tokodigital_backend/internal/middleware"
	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/utils/storage"
)

// ListStores admin tüm mağazaları, mağaza sahibi kendi mağazalarını görür
func ListStores(c *fiber.Ctx) error {
	account := middleware.AccountFromCtx(c)

	var stores []model.Store
	query := database.GetDB()
	if account.Role != model.RoleAdmin {
		query = query.Where("owner_id = ?", account.ID)
	}

	if err := query.Find(&stores).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch stores",
		})
	}

	return c.JSON(fiber.Map{
		"data": stores,
	})
}

func GetStore(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	return c.JSON(fiber.Map{
		"data":       store,
		"public_url": store.GetPublicURL(appConfig.App.Domain),
	})
}

// GetStoreBySubdomain public storefront lookup
func GetStoreBySubdomain(c *fiber.Ctx) error {
	var store model.Store
	err := database.GetDB().
		Where("subdomain = ? AND is_active = ?", c.Params("subdomain"), true).
		First(&store).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Store not found",
		})
	}

	return c.JSON(fiber.Map{
		"data": store,
	})
}

type UpdateStoreInput struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	WhatsApp    string             `json:"whatsapp_number"`
	Email       string             `json:"email"`
	Currency    string             `json:"currency"`
	Address     *model.Address     `json:"address"`
	SocialMedia *model.SocialMedia `json:"social_media"`
	Theme       *model.StoreTheme  `json:"theme"`
}

func UpdateStore(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	input := new(UpdateStoreInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name != "" {
		store.Name = input.Name
	}
	if input.Description != "" {
		store.Description = input.Description
	}
	if input.WhatsApp != "" {
		store.WhatsAppNumber = input.WhatsApp
	}
	if input.Email != "" {
		store.Email = input.Email
	}
	if input.Currency != "" {
		store.Currency = input.Currency
	}
	if input.Address != nil {
		store.Address = datatypes.NewJSONType(*input.Address)
	}
	if input.SocialMedia != nil {
		store.SocialMedia = datatypes.NewJSONType(*input.SocialMedia)
	}
	if input.Theme != nil {
		store.Theme = datatypes.NewJSONType(*input.Theme)
	}

	if err := database.GetDB().Save(store).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update store",
		})
	}

	return c.JSON(fiber.Map{
		"data": store,
	})
}

// UploadStoreLogo logo yükler ve depolama sayaçlarını günceller
func UploadStoreLogo(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	file, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	if !store.CanUploadFile(file.Size) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Storage limit reached. Please upgrade your plan.",
			"code":  middleware.CodeFeatureLocked,
		})
	}

	result, err := storage.UploadImage(storage.UploadConfig{
		File:      file,
		Subdomain: store.Subdomain,
		Folder:    "logos",
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	store.Logo = result.URL
	store.StorageUsed += result.Size
	if err := database.GetDB().Save(store).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update store",
		})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"logo": result.URL,
		},
	})
}
