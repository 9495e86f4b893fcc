package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatStatus string

const (
	ChatActive   ChatStatus = "active"
	ChatResolved ChatStatus = "resolved"
	ChatArchived ChatStatus = "archived"
	ChatBlocked  ChatStatus = "blocked"
)

type SenderType string

const (
	SenderCustomer   SenderType = "customer"
	SenderStoreOwner SenderType = "store_owner"
)

type ChatMessage struct {
	SenderType SenderType `json:"sender_type"`
	SenderID   uint       `json:"sender_id"`
	SenderName string     `json:"sender_name"`
	Message    string     `json:"message"`
	ProductID  uint       `json:"product_id,omitempty"`
	OrderID    uint       `json:"order_id,omitempty"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	SentAt     time.Time  `json:"sent_at"`
}

type Chat struct {
	gorm.Model
	StoreID uint `json:"store_id" gorm:"not null;index:idx_chat_store_status"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone" gorm:"index"`
	CustomerEmail string `json:"customer_email"`

	Messages datatypes.JSONSlice[ChatMessage] `json:"messages"`

	LastMessageText string     `json:"last_message_text"`
	LastMessageAt   *time.Time `json:"last_message_at"`

	Status ChatStatus `json:"status" gorm:"default:'active';index:idx_chat_store_status"`

	UnreadByStore    int `json:"unread_by_store" gorm:"default:0"`
	UnreadByCustomer int `json:"unread_by_customer" gorm:"default:0"`

	// İlişkiler
	Store Store `json:"-" gorm:"foreignKey:StoreID"`
}

// AddMessage mesajı ekler, son mesaj özetini ve okunmadı sayaçlarını günceller
func (c *Chat) AddMessage(senderType SenderType, senderID uint, senderName, text string) ChatMessage {
	now := time.Now()
	msg := ChatMessage{
		SenderType: senderType,
		SenderID:   senderID,
		SenderName: senderName,
		Message:    text,
		SentAt:     now,
	}

	c.Messages = datatypes.NewJSONSlice(append([]ChatMessage(c.Messages), msg))
	c.LastMessageText = text
	c.LastMessageAt = &now

	if senderType == SenderCustomer {
		c.UnreadByStore++
	} else {
		c.UnreadByCustomer++
	}

	return msg
}

// MarkAsRead okuyan tarafın sayaçlarını sıfırlar, karşı tarafın mesajlarını
// okundu işaretler
func (c *Chat) MarkAsRead(reader SenderType) {
	now := time.Now()

	messages := []ChatMessage(c.Messages)
	for i := range messages {
		if !messages[i].IsRead && messages[i].SenderType != reader {
			messages[i].IsRead = true
			messages[i].ReadAt = &now
		}
	}
	c.Messages = datatypes.NewJSONSlice(messages)

	if reader == SenderStoreOwner {
		c.UnreadByStore = 0
	} else {
		c.UnreadByCustomer = 0
	}
}
