package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestIsInStock(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    bool
	}{
		{
			name:    "tracking disabled",
			product: Product{TrackInventory: false, Stock: 0},
			want:    true,
		},
		{
			name:    "tracking enabled with stock",
			product: Product{TrackInventory: true, Stock: 3},
			want:    true,
		},
		{
			name:    "tracking enabled without stock",
			product: Product{TrackInventory: true, Stock: 0},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.IsInStock())
		})
	}
}

func TestReduceStock(t *testing.T) {
	p := Product{TrackInventory: true, Stock: 5}

	assert.True(t, p.ReduceStock(3))
	assert.Equal(t, 2, p.Stock)
	assert.Equal(t, int64(3), p.Sold)

	// Yetersiz stok siparişi reddeder, sayaçlar değişmez
	assert.False(t, p.ReduceStock(3))
	assert.Equal(t, 2, p.Stock)
	assert.Equal(t, int64(3), p.Sold)

	assert.True(t, p.ReduceStock(2))
	assert.Equal(t, 0, p.Stock)
}

func TestReduceStockTrackingDisabled(t *testing.T) {
	p := Product{TrackInventory: false, Stock: 0}

	assert.True(t, p.ReduceStock(10))
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, int64(10), p.Sold)
}

func TestPrimaryImage(t *testing.T) {
	p := Product{}
	assert.Empty(t, p.PrimaryImage())

	p.Images = datatypes.NewJSONSlice([]ProductImage{
		{URL: "a.webp"},
		{URL: "b.webp", IsPrimary: true},
	})
	assert.Equal(t, "b.webp", p.PrimaryImage())

	p.Images = datatypes.NewJSONSlice([]ProductImage{
		{URL: "a.webp"},
		{URL: "b.webp"},
	})
	assert.Equal(t, "a.webp", p.PrimaryImage())
}
