package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	number := GenerateOrderNumber(now)
	assert.True(t, strings.HasPrefix(number, "ORD-"))

	parts := strings.Split(number, "-")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[2], 6)

	// Aynı an için bile ek farklı olmalı
	other := GenerateOrderNumber(now)
	assert.NotEqual(t, number, other)
}

func TestRecalculateTotals(t *testing.T) {
	order := Order{
		Items: datatypes.NewJSONSlice([]OrderItem{
			{ProductID: 1, Name: "Kaos Polos", Price: 50000, Cost: 30000, Quantity: 2},
			{ProductID: 2, Name: "Topi", Price: 25000, Cost: 10000, Quantity: 1},
		}),
		Pricing: datatypes.NewJSONType(OrderPricing{
			Shipping: 15000,
			Discount: 5000,
		}),
	}

	order.RecalculateTotals()

	pricing := order.Pricing.Data()
	assert.Equal(t, float64(125000), pricing.Subtotal)
	assert.Equal(t, float64(135000), pricing.Total) // subtotal + shipping - discount
	assert.Equal(t, float64(70000), pricing.TotalCost)

	items := []OrderItem(order.Items)
	assert.Equal(t, float64(100000), items[0].Subtotal)
	assert.Equal(t, float64(40000), items[0].Profit)
	assert.Equal(t, float64(25000), items[1].Subtotal)
	assert.Equal(t, float64(15000), items[1].Profit)
}

func TestRecalculateTotalsEmptyOrder(t *testing.T) {
	order := Order{}
	order.RecalculateTotals()

	pricing := order.Pricing.Data()
	assert.Zero(t, pricing.Subtotal)
	assert.Zero(t, pricing.Total)
}

func TestAddStatusHistory(t *testing.T) {
	order := Order{Status: OrderPending}

	order.AddStatusHistory(OrderConfirmed, "confirmed by owner", 42)
	order.AddStatusHistory(OrderShipped, "", 42)

	assert.Equal(t, OrderShipped, order.Status)
	history := []StatusChange(order.StatusHistory)
	assert.Len(t, history, 2)
	assert.Equal(t, OrderConfirmed, history[0].Status)
	assert.Equal(t, uint(42), history[0].ChangedBy)
	assert.Equal(t, OrderShipped, history[1].Status)
}
