package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tokodigital_backend/internal/middleware"
	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/email"
	"tokodigital_backend/pkg/utils/whatsapp"
)

type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type CreateOrderInput struct {
	StoreID         uint                  `json:"store_id" validate:"required"`
	Customer        model.Customer        `json:"customer" validate:"required"`
	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	Items           []OrderItemInput      `json:"items" validate:"required,min=1"`
	Shipping        float64               `json:"shipping"`
	Source          model.OrderSource     `json:"source"`
	CustomerNote    string                `json:"customer_note"`
}

// CreateOrder public checkout. Stok düşümü ve sipariş kaydı tek
// transaction'da yapılır.
func CreateOrder(c *fiber.Ctx) error {
	input := new(CreateOrderInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if len(input.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Order must contain at least one item",
		})
	}

	var store model.Store
	if err := database.GetDB().First(&store, input.StoreID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Store not found",
		})
	}

	source := input.Source
	if source == "" {
		source = model.SourceWebsite
	}

	var order model.Order
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var items []model.OrderItem

		for _, line := range input.Items {
			var product model.Product
			if err := tx.Where("id = ? AND store_id = ?", line.ProductID, store.ID).
				First(&product).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}

			if !product.ReduceStock(line.Quantity) {
				return fiber.NewError(fiber.StatusBadRequest, "Insufficient stock for "+product.Name)
			}
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			items = append(items, model.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Cost:      product.Cost,
				Quantity:  line.Quantity,
			})
		}

		order = model.Order{
			StoreID:         store.ID,
			Customer:        datatypes.NewJSONType(input.Customer),
			ShippingAddress: datatypes.NewJSONType(input.ShippingAddress),
			Items:           datatypes.NewJSONSlice(items),
			Pricing:         datatypes.NewJSONType(model.OrderPricing{Shipping: input.Shipping}),
			Source:          source,
			CustomerNote:    input.CustomerNote,
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create order",
		})
	}

	notifyStoreOwner(&store, &order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": order,
	})
}

func notifyStoreOwner(store *model.Store, order *model.Order) {
	if email.GlobalEmailService == nil || store.Email == "" {
		return
	}

	err := email.GlobalEmailService.SendOrderNotificationEmail(store.Email, email.OrderNotificationData{
		StoreName:    store.Name,
		OrderNumber:  order.OrderNumber,
		CustomerName: order.Customer.Data().Name,
		Total:        whatsapp.FormatRupiah(order.Pricing.Data().Total),
		ItemCount:    len(order.Items),
	})
	if err != nil {
		log.Printf("Could not send order notification for %s: %v", order.OrderNumber, err)
	}
}

func ListStoreOrders(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var orders []model.Order
	query := database.GetDB().Where("store_id = ? AND is_archived = ?", store.ID, false)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch orders",
		})
	}

	return c.JSON(fiber.Map{
		"data": orders,
	})
}

type UpdateOrderStatusInput struct {
	Status model.OrderStatus `json:"status" validate:"required"`
	Note   string            `json:"note"`
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)
	account := middleware.AccountFromCtx(c)

	var order model.Order
	err := database.GetDB().
		Where("id = ? AND store_id = ?", c.Params("orderId"), store.ID).
		First(&order).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	input := new(UpdateOrderStatusInput)
	if err := c.BodyParser(input); err != nil || input.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	order.AddStatusHistory(input.Status, input.Note, account.ID)

	if err := database.GetDB().Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update order",
		})
	}

	// Tamamlanan siparişler mağaza satış sayaçlarına işlenir
	if input.Status == model.OrderCompleted {
		database.GetDB().Model(store).Updates(map[string]interface{}{
			"total_sales":   gorm.Expr("total_sales + 1"),
			"total_revenue": gorm.Expr("total_revenue + ?", order.Pricing.Data().Total),
		})
	}

	return c.JSON(fiber.Map{
		"data": order,
	})
}
