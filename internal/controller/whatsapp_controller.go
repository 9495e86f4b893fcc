package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/utils/whatsapp"
)

type GenerateLinkInput struct {
	StoreID   uint `json:"store_id" validate:"required"`
	ProductID uint `json:"product_id"`
}

// GenerateWhatsAppLink ürün sorusu ya da genel soru için wa.me linki üretir
func GenerateWhatsAppLink(c *fiber.Ctx) error {
	input := new(GenerateLinkInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var store model.Store
	if err := database.GetDB().First(&store, input.StoreID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Store not found",
		})
	}

	var message string
	if input.ProductID != 0 {
		var product model.Product
		if err := database.GetDB().
			Where("id = ? AND store_id = ?", input.ProductID, store.ID).
			First(&product).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		message = whatsapp.GenerateInquiryMessage(store.Name, product.Name, product.Price, product.Description)
	} else {
		message = whatsapp.GenerateDefaultMessage(store.Name)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"link":         whatsapp.GenerateLink(store.WhatsAppNumber, message),
			"phone_number": whatsapp.FormatPhoneNumber(store.WhatsAppNumber),
			"message":      message,
		},
	})
}

type CheckoutLinkInput struct {
	StoreID  uint                  `json:"store_id" validate:"required"`
	Items    []OrderItemInput      `json:"items" validate:"required,min=1"`
	Customer whatsapp.CustomerInfo `json:"customer"`
}

// GenerateCheckoutLink sepeti WhatsApp sipariş mesajına çevirir ve siparişi
// source=whatsapp olarak kaydeder
func GenerateCheckoutLink(c *fiber.Ctx) error {
	input := new(CheckoutLinkInput)
	if err := c.BodyParser(input); err != nil || len(input.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var store model.Store
	if err := database.GetDB().First(&store, input.StoreID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Store not found",
		})
	}

	var lines []whatsapp.OrderLine
	var items []model.OrderItem
	var total float64

	for _, item := range input.Items {
		var product model.Product
		if err := database.GetDB().
			Where("id = ? AND store_id = ?", item.ProductID, store.ID).
			First(&product).Error; err != nil {
			continue
		}

		lines = append(lines, whatsapp.OrderLine{
			Name:     product.Name,
			Quantity: item.Quantity,
			Price:    product.Price,
		})
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Cost:      product.Cost,
			Quantity:  item.Quantity,
		})
		total += product.Price * float64(item.Quantity)
	}

	if len(lines) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No valid products in cart",
		})
	}

	message := whatsapp.GenerateOrderMessage(store.Name, lines, total, input.Customer)

	order := model.Order{
		StoreID: store.ID,
		Customer: datatypes.NewJSONType(model.Customer{
			Name:     input.Customer.Name,
			Phone:    input.Customer.Phone,
			WhatsApp: input.Customer.Phone,
		}),
		Items:        datatypes.NewJSONSlice(items),
		Source:       model.SourceWhatsApp,
		CustomerNote: input.Customer.Notes,
	}
	if err := database.GetDB().Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record order",
		})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"link":         whatsapp.GenerateLink(store.WhatsAppNumber, message),
			"phone_number": whatsapp.FormatPhoneNumber(store.WhatsAppNumber),
			"message":      message,
			"total":        total,
			"order_number": order.OrderNumber,
		},
	})
}
