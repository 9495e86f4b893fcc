package model

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// :memory: bağlantı başına ayrı veritabanı demektir, tek bağlantıya inilir
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestMultipleStoresWithoutCustomDomain(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&User{}, &Store{}, &Product{}))

	// Kayıt akışında custom domain boştur; unique index NULL'ları
	// çakıştırmamalı, ikinci tenant onboard edilebilmeli
	first := Store{OwnerID: 1, Name: "Toko Satu", Subdomain: "satu", WhatsAppNumber: "62811"}
	require.NoError(t, db.Create(&first).Error)

	second := Store{OwnerID: 2, Name: "Toko Dua", Subdomain: "dua", WhatsAppNumber: "62812"}
	assert.NoError(t, db.Create(&second).Error)
}

func TestCustomDomainStaysUnique(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&User{}, &Store{}, &Product{}))

	domain := "toko-satu.com"
	first := Store{OwnerID: 1, Name: "Toko Satu", Subdomain: "satu", WhatsAppNumber: "62811", CustomDomain: &domain}
	require.NoError(t, db.Create(&first).Error)

	second := Store{OwnerID: 2, Name: "Toko Dua", Subdomain: "dua", WhatsAppNumber: "62812", CustomDomain: &domain}
	assert.Error(t, db.Create(&second).Error)
}

func TestGetPublicURL(t *testing.T) {
	store := Store{Subdomain: "demo"}
	assert.Equal(t, "https://demo.toko-digital.com", store.GetPublicURL("toko-digital.com"))

	domain := "toko-demo.com"
	store.CustomDomain = &domain
	assert.Equal(t, "https://toko-demo.com", store.GetPublicURL("toko-digital.com"))
}

func TestCanUploadFile(t *testing.T) {
	store := Store{StorageUsed: 90, StorageLimit: 100}

	assert.True(t, store.CanUploadFile(10))
	assert.False(t, store.CanUploadFile(11))
}
