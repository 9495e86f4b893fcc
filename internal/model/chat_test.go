package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMessage(t *testing.T) {
	chat := Chat{}

	chat.AddMessage(SenderCustomer, 0, "Budi", "Halo, apakah masih ada?")
	chat.AddMessage(SenderStoreOwner, 42, "Toko Maju", "Masih, silakan order")
	chat.AddMessage(SenderCustomer, 0, "Budi", "Oke saya ambil 2")

	assert.Len(t, chat.Messages, 3)
	assert.Equal(t, "Oke saya ambil 2", chat.LastMessageText)
	assert.NotNil(t, chat.LastMessageAt)

	// Müşteri mesajları mağaza sayacını, mağaza mesajları müşteri sayacını artırır
	assert.Equal(t, 2, chat.UnreadByStore)
	assert.Equal(t, 1, chat.UnreadByCustomer)
}

func TestMarkAsRead(t *testing.T) {
	chat := Chat{}
	chat.AddMessage(SenderCustomer, 0, "Budi", "Halo")
	chat.AddMessage(SenderCustomer, 0, "Budi", "Ada yang baru?")
	chat.AddMessage(SenderStoreOwner, 42, "Toko Maju", "Ada")

	chat.MarkAsRead(SenderStoreOwner)

	assert.Equal(t, 0, chat.UnreadByStore)
	assert.Equal(t, 1, chat.UnreadByCustomer)

	messages := []ChatMessage(chat.Messages)
	assert.True(t, messages[0].IsRead)
	assert.NotNil(t, messages[0].ReadAt)
	assert.True(t, messages[1].IsRead)
	// Okuyanın kendi mesajı işaretlenmez
	assert.False(t, messages[2].IsRead)

	chat.MarkAsRead(SenderCustomer)
	assert.Equal(t, 0, chat.UnreadByCustomer)
	assert.True(t, []ChatMessage(chat.Messages)[2].IsRead)
}
