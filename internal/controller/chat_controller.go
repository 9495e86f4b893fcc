package controller

import (
	"github.com/gofiber/fiber/v2"

	"tokodigital_backend/internal/middleware"
	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
)

func ListStoreChats(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var chats []model.Chat
	query := database.GetDB().Where("store_id = ?", store.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("last_message_at DESC NULLS LAST").Find(&chats).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch chats",
		})
	}

	return c.JSON(fiber.Map{
		"data": chats,
	})
}

type CustomerMessageInput struct {
	StoreID       uint   `json:"store_id" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	CustomerEmail string `json:"customer_email"`
	Message       string `json:"message" validate:"required"`
}

// CreateCustomerMessage public uç: müşteri telefonuna göre açık sohbet
// bulunur ya da yeni sohbet açılır
func CreateCustomerMessage(c *fiber.Ctx) error {
	input := new(CustomerMessageInput)
	if err := c.BodyParser(input); err != nil || input.Message == "" {
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

	var chat model.Chat
	err := database.GetDB().
		Where("store_id = ? AND customer_phone = ? AND status = ?",
			store.ID, input.CustomerPhone, model.ChatActive).
		First(&chat).Error
	if err != nil {
		chat = model.Chat{
			StoreID:       store.ID,
			CustomerName:  input.CustomerName,
			CustomerPhone: input.CustomerPhone,
			CustomerEmail: input.CustomerEmail,
			Status:        model.ChatActive,
		}
	}

	chat.AddMessage(model.SenderCustomer, 0, input.CustomerName, input.Message)

	if err := database.GetDB().Save(&chat).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": chat,
	})
}

type ReplyInput struct {
	Message string `json:"message" validate:"required"`
}

// ReplyChat mağaza sahibinin cevabı, chatSupport feature'ı ile korunur
func ReplyChat(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)
	account := middleware.AccountFromCtx(c)

	var chat model.Chat
	err := database.GetDB().
		Where("id = ? AND store_id = ?", c.Params("chatId"), store.ID).
		First(&chat).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Chat not found",
		})
	}

	input := new(ReplyInput)
	if err := c.BodyParser(input); err != nil || input.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	chat.AddMessage(model.SenderStoreOwner, account.ID, account.Name, input.Message)

	if err := database.GetDB().Save(&chat).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save message",
		})
	}

	return c.JSON(fiber.Map{
		"data": chat,
	})
}

func MarkChatRead(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var chat model.Chat
	err := database.GetDB().
		Where("id = ? AND store_id = ?", c.Params("chatId"), store.ID).
		First(&chat).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Chat not found",
		})
	}

	chat.MarkAsRead(model.SenderStoreOwner)

	if err := database.GetDB().Save(&chat).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update chat",
		})
	}

	return c.JSON(fiber.Map{
		"data": chat,
	})
}
