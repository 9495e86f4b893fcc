package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tokodigital_backend/internal/middleware"
	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/utils/storage"
)

// ListStoreProducts public vitrin listesi, sadece aktif ürünler
func ListStoreProducts(c *fiber.Ctx) error {
	var products []model.Product
	err := database.GetDB().
		Where("store_id = ? AND is_active = ? AND visibility = ?",
			c.Params("storeId"), true, model.VisibilityVisible).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch products",
		})
	}

	return c.JSON(fiber.Map{
		"data": products,
	})
}

// GetProduct public ürün detayı, görüntülenme sayacını artırır
func GetProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := database.GetDB().First(&product, c.Params("productId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	// Sayaç atomik artırılır, response'taki değer yaklaşık olabilir
	database.GetDB().Model(&product).UpdateColumn("views", gorm.Expr("views + 1"))
	product.Views++

	return c.JSON(fiber.Map{
		"data": product,
	})
}

type ProductInput struct {
	Name           string                `json:"name" validate:"required"`
	Description    string                `json:"description"`
	Category       model.ProductCategory `json:"category" validate:"required"`
	Price          float64               `json:"price" validate:"required,min=0"`
	ComparePrice   float64               `json:"compare_price"`
	Cost           float64               `json:"cost"`
	SKU            string                `json:"sku"`
	Stock          int                   `json:"stock"`
	TrackInventory *bool                 `json:"track_inventory"`
	Tags           []string              `json:"tags"`
	Featured       bool                  `json:"featured"`
}

func CreateProduct(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	input := new(ProductInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	product := model.Product{
		StoreID:      store.ID,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		Cost:         input.Cost,
		SKU:          input.SKU,
		Stock:        input.Stock,
		Tags:         datatypes.NewJSONSlice(input.Tags),
		Featured:     input.Featured,
		IsActive:     true,
	}
	if input.TrackInventory != nil {
		product.TrackInventory = *input.TrackInventory
	} else {
		product.TrackInventory = true
	}

	if err := database.GetDB().Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": product,
	})
}

func UpdateProduct(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var product model.Product
	err := database.GetDB().
		Where("id = ? AND store_id = ?", c.Params("productId"), store.ID).
		First(&product).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	input := new(ProductInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.ComparePrice > 0 {
		product.ComparePrice = input.ComparePrice
	}
	if input.Cost > 0 {
		product.Cost = input.Cost
	}
	if input.SKU != "" {
		product.SKU = input.SKU
	}
	if input.Stock >= 0 {
		product.Stock = input.Stock
	}
	if input.TrackInventory != nil {
		product.TrackInventory = *input.TrackInventory
	}
	if input.Tags != nil {
		product.Tags = datatypes.NewJSONSlice(input.Tags)
	}
	product.Featured = input.Featured

	if err := database.GetDB().Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update product",
		})
	}

	return c.JSON(fiber.Map{
		"data": product,
	})
}

func DeleteProduct(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	result := database.GetDB().
		Where("id = ? AND store_id = ?", c.Params("productId"), store.ID).
		Delete(&model.Product{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete product",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// UploadProductImage görseli R2'ye yükler, ürün ve mağaza sayaçlarını günceller
func UploadProductImage(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var product model.Product
	err := database.GetDB().
		Where("id = ? AND store_id = ?", c.Params("productId"), store.ID).
		First(&product).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	file, err := c.FormFile("image")
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
		Folder:    "products",
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	images := append([]model.ProductImage(product.Images), model.ProductImage{
		URL:       result.URL,
		IsPrimary: len(product.Images) == 0,
		Size:      result.Size,
	})
	product.Images = datatypes.NewJSONSlice(images)

	if err := database.GetDB().Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update product",
		})
	}

	store.StorageUsed += result.Size
	database.GetDB().Model(store).UpdateColumn("storage_used", store.StorageUsed)

	return c.JSON(fiber.Map{
		"data": product,
	})
}
