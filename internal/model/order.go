package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type OrderSource string

const (
	SourceWebsite  OrderSource = "website"
	SourceWhatsApp OrderSource = "whatsapp"
	SourceManual   OrderSource = "manual"
)

type Customer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
}

type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes"`
}

type OrderItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Cost      float64 `json:"cost"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	Profit    float64 `json:"profit"`
}

type OrderPricing struct {
	Subtotal    float64 `json:"subtotal"`
	Shipping    float64 `json:"shipping"`
	Tax         float64 `json:"tax"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
	TotalCost   float64 `json:"total_cost"`
	TotalProfit float64 `json:"total_profit"`
}

type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note"`
	ChangedBy uint        `json:"changed_by"`
	ChangedAt time.Time   `json:"changed_at"`
}

type Order struct {
	gorm.Model
	StoreID     uint   `json:"store_id" gorm:"not null;index:idx_store_status"`
	OrderNumber string `json:"order_number" gorm:"uniqueIndex;not null"`

	Customer        datatypes.JSONType[Customer]        `json:"customer"`
	ShippingAddress datatypes.JSONType[ShippingAddress] `json:"shipping_address"`

	Items   datatypes.JSONSlice[OrderItem]   `json:"items"`
	Pricing datatypes.JSONType[OrderPricing] `json:"pricing"`

	PaymentMethod string        `json:"payment_method" gorm:"default:'whatsapp'"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"default:'pending'"`

	Status        OrderStatus                       `json:"status" gorm:"default:'pending';index:idx_store_status"`
	StatusHistory datatypes.JSONSlice[StatusChange] `json:"status_history"`

	Source       OrderSource `json:"source" gorm:"default:'website'"`
	CustomerNote string      `json:"customer_note"`
	InternalNote string      `json:"internal_note"`

	IsArchived bool `json:"is_archived" gorm:"default:false"`

	// İlişkiler
	Store Store `json:"-" gorm:"foreignKey:StoreID"`
}

// BeforeCreate sipariş numarası ve fiyat toplamlarını türetir
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = GenerateOrderNumber(time.Now())
	}

	o.RecalculateTotals()
	return nil
}

// GenerateOrderNumber ORD-<unix-nano>-<kısa-ek> formatında benzersiz numara üretir
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixNano()/int64(time.Millisecond), uuid.NewString()[:6])
}

// RecalculateTotals kalem subtotal/kâr alanlarını ve sipariş toplamını
// kalemlerden yeniden hesaplar
func (o *Order) RecalculateTotals() {
	pricing := o.Pricing.Data()

	var subtotal, totalCost float64
	items := []OrderItem(o.Items)
	for i := range items {
		items[i].Subtotal = items[i].Price * float64(items[i].Quantity)
		items[i].Profit = (items[i].Price - items[i].Cost) * float64(items[i].Quantity)
		subtotal += items[i].Subtotal
		totalCost += items[i].Cost * float64(items[i].Quantity)
	}
	o.Items = datatypes.NewJSONSlice(items)

	pricing.Subtotal = subtotal
	pricing.Total = subtotal + pricing.Shipping + pricing.Tax - pricing.Discount
	pricing.TotalCost = totalCost
	pricing.TotalProfit = pricing.Total - totalCost - pricing.Shipping
	o.Pricing = datatypes.NewJSONType(pricing)
}

// AddStatusHistory durum geçmişine kayıt ekler ve güncel durumu değiştirir
func (o *Order) AddStatusHistory(status OrderStatus, note string, userID uint) {
	history := append([]StatusChange(o.StatusHistory), StatusChange{
		Status:    status,
		Note:      note,
		ChangedBy: userID,
		ChangedAt: time.Now(),
	})
	o.StatusHistory = datatypes.NewJSONSlice(history)
	o.Status = status
}
