package whatsapp

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "local format with leading zero",
			input: "081234567890",
			want:  "6281234567890",
		},
		{
			name:  "already international",
			input: "6281234567890",
			want:  "6281234567890",
		},
		{
			name:  "with plus and dashes",
			input: "+62 812-3456-7890",
			want:  "6281234567890",
		},
		{
			name:  "bare number without country code",
			input: "81234567890",
			want:  "6281234567890",
		},
		{
			name:  "spaces and parentheses",
			input: "(0812) 3456 7890",
			want:  "6281234567890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhoneNumber(tt.input))
		})
	}
}

func TestGenerateLink(t *testing.T) {
	link := GenerateLink("081234567890", "Halo, apakah masih ada?")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/6281234567890?text="))
	// Mesaj URL-encode edilmeli
	assert.NotContains(t, link, " ")
	assert.Contains(t, link, "Halo")
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 1.500.000", FormatRupiah(1500000))
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 99.000", FormatRupiah(99000))
}

func TestGenerateOrderMessage(t *testing.T) {
	lines := []OrderLine{
		{Name: "Kaos Polos", Quantity: 2, Price: 50000},
		{Name: "Topi", Quantity: 1, Price: 25000},
	}
	customer := CustomerInfo{
		Name:    "Budi",
		Phone:   "081234567890",
		Address: "Jl. Sudirman No. 1",
		Notes:   "Kirim sore",
	}

	msg := GenerateOrderMessage("Toko Maju", lines, 125000, customer)

	assert.Contains(t, msg, "PESANAN BARU")
	assert.Contains(t, msg, "Dari: Toko Maju")
	assert.Contains(t, msg, "Kaos Polos")
	assert.Contains(t, msg, "Qty: 2 x Rp 50.000")
	assert.Contains(t, msg, "Total: Rp 125.000")
	assert.Contains(t, msg, "Nama: Budi")
	assert.Contains(t, msg, "Alamat: Jl. Sudirman No. 1")
	assert.Contains(t, msg, "Kirim sore")
}

func TestGenerateOrderMessageWithoutCustomer(t *testing.T) {
	msg := GenerateOrderMessage("Toko Maju", []OrderLine{{Name: "Topi", Quantity: 1, Price: 25000}}, 25000, CustomerInfo{})

	assert.NotContains(t, msg, "Data Pembeli")
	assert.NotContains(t, msg, "Catatan")
}

func TestGenerateInquiryMessage(t *testing.T) {
	longDesc := strings.Repeat("a", 150)
	msg := GenerateInquiryMessage("Toko Maju", "Kaos Polos", 50000, longDesc)

	assert.Contains(t, msg, "Kaos Polos")
	assert.Contains(t, msg, "Rp 50.000")
	// Uzun açıklama 100 karaktere kırpılır
	assert.Contains(t, msg, strings.Repeat("a", 100)+"...")
	assert.NotContains(t, msg, strings.Repeat("a", 101))
}

func TestGenerateInquiryMessageShortDescription(t *testing.T) {
	msg := GenerateInquiryMessage("Toko Maju", "Topi", 25000, "Topi bagus")

	assert.Contains(t, msg, "Topi bagus")
	assert.NotContains(t, msg, "...")
}

func TestGenerateInquiryMessageMultibyteDescription(t *testing.T) {
	// Kırpma noktası multibyte karakterin ortasına denk gelse de
	// çıktı geçerli UTF-8 kalmalı
	longDesc := strings.Repeat("é", 150)
	msg := GenerateInquiryMessage("Toko Maju", "Kaos", 50000, longDesc)

	assert.True(t, utf8.ValidString(msg))
	assert.Contains(t, msg, strings.Repeat("é", 100)+"...")
	assert.NotContains(t, msg, strings.Repeat("é", 101))
}

func TestGenerateDefaultMessage(t *testing.T) {
	msg := GenerateDefaultMessage("Toko Maju")
	assert.Contains(t, msg, "Toko Maju")
}
